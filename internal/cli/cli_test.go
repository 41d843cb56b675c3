package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	membersCSV = "unit_box,name,banner_id,username,year\n" +
		"101,Alice A,B001,alice,2019\n" +
		"102,Bob B,B002,bob,2020\n"
	reimbursementsCSV = "timestamp,username,date,event_name,purpose,amount,num_attendees,other_students,notes,receipt,is_done,processed_by\n" +
		"2018-01-03,alice,2018-01-02,Movie Night,Food,45.50,3,bob,,r1,,\n" +
		"2018-01-04,bob,2018-01-02,Trip,Senate bus token,10,1,,bus was late,r2,,\n" +
		"2018-01-05,alice,2018-01-02,Old,Food,9,1,,,r3,yes,\n"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	members := filepath.Join(dir, "members.csv")
	rmbs := filepath.Join(dir, "reimbursements.csv")
	if err := os.WriteFile(members, []byte(membersCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rmbs, []byte(reimbursementsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_BACKEND", "csv")
	t.Setenv("CSV_MEMBERS_PATH", members)
	t.Setenv("CSV_REIMBURSEMENTS_PATH", rmbs)
	t.Setenv("SQLITE_DB_PATH", filepath.Join(dir, "data", "reimburse.db"))
	t.Setenv("ACCOUNTS_FILE", "")
	t.Setenv("ADDRESS_FORMAT", "Box %s")
	t.Setenv("ORG_NAME", "Chess Club")
	t.Setenv("PROCESSED_BY", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestFormsToStdout(t *testing.T) {
	setupEnv(t)

	out, errOut, err := run(t, "forms", "--processed-by", "Treasurer")
	if err != nil {
		t.Fatalf("forms: %v\n%s", err, errOut)
	}
	if strings.Count(out, "~~~~~~~~~~~~~~~\nName: Treasurer\n") != 2 {
		t.Fatalf("expected two forms:\n%s", out)
	}
	alice := out[:strings.Index(out, "Name of student or vendor? Bob B")]
	for _, want := range []string{
		"Organization name: Chess Club\n",
		"Name of student or vendor? Alice A\n",
		"Address: Box 101\n",
		"Movie Night; 2018-01-02; 3; 45.5; PROFITS\n",
		"The following students were paid for with this reimbursement:",
	} {
		if !strings.Contains(alice, want) {
			t.Errorf("alice form missing %q:\n%s", want, alice)
		}
	}
	if strings.Contains(out, "Old;") {
		t.Fatalf("done row rendered:\n%s", out)
	}
	if !strings.Contains(errOut, "rendered 2 forms from 2 reimbursements (0 skipped, 1 done)") {
		t.Fatalf("summary missing: %q", errOut)
	}
}

func TestFormsToDirectoryWithFilter(t *testing.T) {
	dir := setupEnv(t)
	outDir := filepath.Join(dir, "forms")

	if _, errOut, err := run(t, "forms", "--out", outDir, "--member", "bob"); err != nil {
		t.Fatalf("forms: %v\n%s", err, errOut)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "bob.txt"))
	if err != nil {
		t.Fatalf("read bob form: %v", err)
	}
	if !strings.Contains(string(data), "Amount requesting from SOFC: 10\n") {
		t.Fatalf("bob form:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(outDir, "alice.txt")); !os.IsNotExist(err) {
		t.Fatalf("alice form should not be written, stat err = %v", err)
	}
}

func TestMembersSyncAndList(t *testing.T) {
	setupEnv(t)

	out, errOut, err := run(t, "members", "sync")
	if err != nil {
		t.Fatalf("members sync: %v\n%s", err, errOut)
	}
	if strings.TrimSpace(out) != "synced 2 members (0 skipped)" {
		t.Fatalf("sync output: %q", out)
	}

	out, errOut, err = run(t, "members", "list")
	if err != nil {
		t.Fatalf("members list: %v\n%s", err, errOut)
	}
	want := "alice, class year: 2019, banner id: B001\nbob, class year: 2020, banner id: B002\n"
	if out != want {
		t.Fatalf("list output:\n%s\nwant:\n%s", out, want)
	}
}

func TestClassify(t *testing.T) {
	setupEnv(t)

	cases := map[string]string{
		"Senate bus token": "SOFC",
		"Food":             "PROFITS",
		"Taxi":             "UNCLASSIFIED",
	}
	for purpose, want := range cases {
		out, _, err := run(t, append([]string{"classify"}, strings.Fields(purpose)...)...)
		if err != nil {
			t.Fatalf("classify %q: %v", purpose, err)
		}
		if strings.TrimSpace(out) != want {
			t.Errorf("classify %q = %q, want %s", purpose, out, want)
		}
	}

	if _, _, err := run(t, "classify"); err == nil {
		t.Fatal("expected error without a purpose")
	}
	out, _, err := run(t, "classify", "--all")
	if err != nil || !strings.Contains(out, "PROFITS: Food\n") {
		t.Fatalf("classify --all: %q err=%v", out, err)
	}
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("DATA_BACKEND", "memory")

	_, _, err := run(t, "classify", "Food")
	if err == nil || !strings.Contains(err.Error(), "invalid data backend") {
		t.Fatalf("expected config error, got %v", err)
	}
}

package form

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"reimburse/internal/core"
)

var alice = core.Member{Username: "alice", Name: "Alice A", BannerID: "B001", Year: 2019, Address: "Box 101"}

func reimbursement(t *testing.T, purpose, amount string, extra func(*core.ReimbursementFields)) core.Reimbursement {
	t.Helper()
	f := core.ReimbursementFields{
		Username:     "alice",
		Date:         "2018-01-02",
		EventName:    "Event " + purpose,
		Purpose:      purpose,
		Amount:       amount,
		NumAttendees: "1",
	}
	if extra != nil {
		extra(&f)
	}
	r, err := core.NewReimbursement(f, core.DefaultAccountTable())
	if err != nil {
		t.Fatalf("new reimbursement: %v", err)
	}
	return r
}

func TestBuildDataTotalsWithUnclassified(t *testing.T) {
	rs := []core.Reimbursement{
		reimbursement(t, "Senate bus token", "10", nil),
		reimbursement(t, "Taxi", "20", nil),
	}
	d := BuildData("Treasurer", alice, rs, core.NewDirectory([]core.Member{alice}))

	if !d.SOFCTotal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("sofc total: got %s", d.SOFCTotal)
	}
	if !d.ProfitsTotal.IsZero() {
		t.Errorf("profits total: got %s", d.ProfitsTotal)
	}
	if !d.Total.Equal(decimal.NewFromInt(30)) {
		t.Errorf("total: got %s", d.Total)
	}
	if len(d.Notes) != 3 || d.Notes[0] != MissingAccountWarning {
		t.Fatalf("expected leading warning plus one note per reimbursement, got %q", d.Notes)
	}
	if d.Unclassified != 1 {
		t.Errorf("unclassified: got %d", d.Unclassified)
	}
}

func TestBuildDataTotalsInvariant(t *testing.T) {
	amounts := []struct{ purpose, amount string }{
		{"Food", "12.34"},
		{"Senate bus token", "2.5"},
		{"Transportation (not bus token)", "40"},
		{"Books", "0.66"},
		{"Food", "7"},
	}
	var rs []core.Reimbursement
	sum := decimal.Zero
	unclassified := decimal.Zero
	for _, a := range amounts {
		r := reimbursement(t, a.purpose, a.amount, nil)
		rs = append(rs, r)
		sum = sum.Add(r.Amount)
		if r.Account() == core.AccountUnclassified {
			unclassified = unclassified.Add(r.Amount)
		}
	}
	d := BuildData("", alice, rs, nil)
	if !d.Total.Equal(sum) {
		t.Fatalf("total %s != sum %s", d.Total, sum)
	}
	if !d.Total.Equal(d.SOFCTotal.Add(d.ProfitsTotal).Add(unclassified)) {
		t.Fatalf("total %s != sofc %s + profits %s + unclassified %s", d.Total, d.SOFCTotal, d.ProfitsTotal, unclassified)
	}
	if d.Total.String() != "62.5" {
		t.Fatalf("total: got %s", d.Total)
	}
}

func TestBuildDataPreservesOrder(t *testing.T) {
	rs := []core.Reimbursement{
		reimbursement(t, "Food", "1", nil),
		reimbursement(t, "Senate bus token", "2", nil),
		reimbursement(t, "Food", "3", nil),
	}
	d := BuildData("", alice, rs, nil)
	if strings.Join(d.Purposes, ",") != "Food,Senate bus token,Food" {
		t.Fatalf("purposes: %v", d.Purposes)
	}
	for i, r := range rs {
		if d.Events[i] != r.Event() {
			t.Fatalf("event %d: got %q want %q", i, d.Events[i], r.Event())
		}
	}
	for _, n := range d.Notes {
		if n == MissingAccountWarning {
			t.Fatalf("unexpected warning with all purposes classified")
		}
	}
}

func TestRenderLayout(t *testing.T) {
	rs := []core.Reimbursement{
		reimbursement(t, "Food", "45.50", func(f *core.ReimbursementFields) {
			f.EventName = "Movie Night"
			f.NumAttendees = "3"
		}),
		reimbursement(t, "Senate bus token", "10", func(f *core.ReimbursementFields) {
			f.EventName = "Trip"
			f.Notes = "bus was late"
		}),
	}
	r := NewRenderer(Org{Name: "Chess Club", SOFCFundNum: "S-1", ProfitsFundNum: "P-2"})
	got := r.Render(BuildData("Treasurer", alice, rs, nil))

	want := strings.Join([]string{
		"~~~~~~~~~~~~~~~",
		"Name: Treasurer",
		"Organization name: Chess Club",
		"SOFC fund number: S-1",
		"Profits fund number: P-2",
		"Student or outside vendor? STUDENT",
		"Name of student or vendor? Alice A",
		"B Number: B001",
		"Address: Box 101",
		"",
		"Events:",
		"Movie Night; 2018-01-02; 3; 45.5; PROFITS",
		"Trip; 2018-01-02; 1; 10; SOFC",
		"",
		"Reason for reimbursement: Food, Senate bus token",
		"Amount requesting from SOFC: 10",
		"Amount requesting from profits: 45.5",
		"Total amount requested: 55.5",
		"Amount requesting from CLCE: 0",
		"",
		"Additional notes to add:",
		"NOTES FOR EVENT Trip; 2018-01-02; 1; 10; SOFC:",
		"Additional notes",
		"bus was late",
		"~~~~~~~~~~~~~~~",
	}, "\n")
	if got != want {
		t.Fatalf("render mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTotalIncludesUnclassified(t *testing.T) {
	rs := []core.Reimbursement{
		reimbursement(t, "Senate bus token", "10", nil),
		reimbursement(t, "Taxi", "20", nil),
	}
	out := NewRenderer(Org{}).Render(BuildData("Treasurer", alice, rs, nil))
	want := "Amount requesting from SOFC: 10\n" +
		"Amount requesting from profits: 0\n" +
		"Total amount requested: 30\n" +
		"Amount requesting from CLCE: 0\n"
	if !strings.Contains(out, want) {
		t.Fatalf("amount block missing:\n%s", out)
	}
}

func TestRenderWarningFirstAndOnce(t *testing.T) {
	rs := []core.Reimbursement{
		reimbursement(t, "Taxi", "5", nil),
		reimbursement(t, "Parking", "6", func(f *core.ReimbursementFields) { f.Notes = "meter" }),
	}
	out := NewRenderer(Org{}).Render(BuildData("", alice, rs, nil))
	if strings.Count(out, MissingAccountWarning) != 1 {
		t.Fatalf("expected one warning, got:\n%s", out)
	}
	after := out[strings.Index(out, "Additional notes to add:\n")+len("Additional notes to add:\n"):]
	if !strings.HasPrefix(after, MissingAccountWarning+"\n") {
		t.Fatalf("warning is not the first note:\n%s", after)
	}
}

func TestRenderCollapsesDoubleSpaces(t *testing.T) {
	d := BuildData("Jo  Treasurer", core.Member{Name: "A   B"}, nil, nil)
	out := NewRenderer(Org{Name: "Club  Name"}).Render(d)
	if strings.Contains(out, "  ") {
		t.Fatalf("double space left in output:\n%s", out)
	}
	if !strings.Contains(out, "Name: Jo Treasurer\n") || !strings.Contains(out, "vendor? A B\n") {
		t.Fatalf("unexpected collapse:\n%s", out)
	}
}

func TestRenderForm(t *testing.T) {
	rs := []core.Reimbursement{reimbursement(t, "Food", "1", nil)}
	f := NewRenderer(Org{}).RenderForm("Treasurer", alice, rs, nil)
	if f.Username != "alice" || f.ProcessedBy != "Treasurer" || !strings.Contains(f.Body, "Name of student or vendor? Alice A") {
		t.Fatalf("unexpected form: %+v", f)
	}
}

package core

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  any
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"45.50", "45.5", true},
		{" 2.50 ", "2.5", true},
		{"$1,200.00", "1200", true},
		{"0", "0", true},
		{12.25, "12.25", true},
		{7, "7", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{nil, "", false},
		{true, "", false},
		{float32(1.5), "1.5", true},
		{float32(math.NaN()), "", false},
		{float32(math.Inf(1)), "", false},
		{math.NaN(), "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || FormatAmount(got) != tc.out {
				t.Fatalf("%v expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%v expected error", tc.in)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in  any
		out int
		ok  bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{" 12.00 ", 12, true},
		{" 0 ", 0, true},
		{3.0, 3, true},
		{12, 12, true},
		{"3.5", 0, false},
		{2.5, 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"many", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%v expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%v expected error", tc.in)
		}
	}
}

func TestNumAttendeesFromFormattedCell(t *testing.T) {
	r, err := NewReimbursement(ReimbursementFields{EventName: "e", Date: "d", Amount: "1", NumAttendees: "3.0"}, nil)
	if err != nil {
		t.Fatalf("new reimbursement: %v", err)
	}
	if r.NumAttendees != 3 || r.Event() != "e; d; 3; 1; UNCLASSIFIED" {
		t.Fatalf("got %d attendees, event %q", r.NumAttendees, r.Event())
	}
}

func TestAmountRoundTripsIntoEventSummary(t *testing.T) {
	for _, s := range []string{"0.1", "3", "19.99", "1000.5", "0.05"} {
		r, err := NewReimbursement(ReimbursementFields{EventName: "e", Date: "d", Amount: s, NumAttendees: "1"}, nil)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		want := "e; d; 1; " + s + "; UNCLASSIFIED"
		if r.Event() != want {
			t.Fatalf("%s: got %q want %q", s, r.Event(), want)
		}
	}
}

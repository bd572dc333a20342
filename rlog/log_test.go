package rlog

import "testing"

func TestForSessionTagsTheSessionField(t *testing.T) {
	l := ForSession("sess-42")
	if got := l.Entry.Data["session"]; got != "sess-42" {
		t.Fatalf("got session field %v, want sess-42", got)
	}
}

func TestSetLevelRejectsUnknownLevel(t *testing.T) {
	if err := SetLevel("not-a-level"); err == nil {
		t.Fatalf("want an error for an unknown level")
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
}

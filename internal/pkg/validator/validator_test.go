package validator

import "testing"

func TestIsEmpty(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"   ":     true,
		"\t\n":    true,
		"payroll": false,
		" x ":     false,
	}
	for input, want := range cases {
		if got := IsEmpty(input); got != want {
			t.Errorf("IsEmpty(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-14"); !ok {
		t.Error("expected 2025-02-14 to be valid")
	}
	if _, ok := IsValidDate("14/02/2025"); ok {
		t.Error("expected 14/02/2025 to be invalid")
	}
	if _, ok := IsValidDate("2025-13-01"); ok {
		t.Error("expected 2025-13-01 to be invalid")
	}
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"draft", "submitted", "approved"}
	if !IsInSlice("draft", statuses) {
		t.Error("expected draft to be found")
	}
	if IsInSlice("paid", statuses) {
		t.Error("expected paid to be absent")
	}
}

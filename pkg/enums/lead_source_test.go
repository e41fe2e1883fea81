package enums

import "testing"

func TestParseLeadSource(t *testing.T) {
	for _, raw := range []string{"web", "web_paid"} {
		got, err := ParseLeadSource(raw)
		if err != nil {
			t.Fatalf("ParseLeadSource(%q) unexpected error: %v", raw, err)
		}
		if !got.IsValid() || got.String() != raw {
			t.Fatalf("ParseLeadSource(%q) = %q", raw, got)
		}
	}
	if _, err := ParseLeadSource("email"); err == nil {
		t.Fatal("expected error for unknown source")
	}
	if LeadSource("WEB").IsValid() {
		t.Fatal("sources are case sensitive")
	}
}

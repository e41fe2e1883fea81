package enums

import "fmt"

// LeadSource tags which intake flow created a lead.
type LeadSource string

const (
	LeadSourceWeb     LeadSource = "web"
	LeadSourceWebPaid LeadSource = "web_paid"
)

var validLeadSources = []LeadSource{
	LeadSourceWeb,
	LeadSourceWebPaid,
}

// String implements fmt.Stringer.
func (s LeadSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LeadSource.
func (s LeadSource) IsValid() bool {
	for _, candidate := range validLeadSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLeadSource converts raw input into a LeadSource.
func ParseLeadSource(value string) (LeadSource, error) {
	for _, candidate := range validLeadSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead source %q", value)
}

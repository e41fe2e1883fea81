package leads

import (
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
)

const (
	MinNameLength    = 2
	MinMessageLength = 10
)

// Rejection reasons, also used as metric labels.
const (
	ReasonSpam         = "spam"
	ReasonNameShort    = "name_too_short"
	ReasonMessageShort = "message_too_short"
)

// Submission is the raw contact payload shared by the free and paid flows.
// Website is the honeypot field; humans never see it.
type Submission struct {
	Name    string
	Email   string
	Message string
	Website string
}

// Validate applies the intake rules and returns the trimmed submission. It has
// no side effects.
func Validate(in Submission) (Submission, error) {
	if in.Website != "" {
		return Submission{}, rejection(ReasonSpam, "website", "invalid submission")
	}

	out := Submission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}

	if utf8.RuneCountInString(out.Name) < MinNameLength {
		return Submission{}, rejection(ReasonNameShort, "name", "name too short")
	}
	if utf8.RuneCountInString(out.Message) < MinMessageLength {
		return Submission{}, rejection(ReasonMessageShort, "message", "message too short")
	}
	return out, nil
}

func rejection(reason, field, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]any{"field": field, "reason": reason})
}

// RejectionReason extracts the validation reason carried by err, if any.
func RejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ""
	}
	if details, ok := typed.Details().(map[string]any); ok {
		if reason, ok := details["reason"].(string); ok {
			return reason
		}
	}
	return ""
}

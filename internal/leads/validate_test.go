package leads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
)

func TestValidateTrimsFields(t *testing.T) {
	out, err := Validate(Submission{
		Name:    "  Ada  ",
		Email:   " ada@example.com ",
		Message: "\tHello there, friend\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Name)
	assert.Equal(t, "ada@example.com", out.Email)
	assert.Equal(t, "Hello there, friend", out.Message)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		in      Submission
		message string
		reason  string
	}{
		{
			name:    "honeypot",
			in:      Submission{Name: "Ada", Email: "a@b.co", Message: "Hello there friend", Website: "http://spam"},
			message: "invalid submission",
			reason:  ReasonSpam,
		},
		{
			name:    "honeypot checked before length",
			in:      Submission{Name: "A", Message: "short", Website: "x"},
			message: "invalid submission",
			reason:  ReasonSpam,
		},
		{
			name:    "name one rune",
			in:      Submission{Name: "A", Email: "a@b.co", Message: "Hello there friend"},
			message: "name too short",
			reason:  ReasonNameShort,
		},
		{
			name:    "name only spaces",
			in:      Submission{Name: "    ", Email: "a@b.co", Message: "Hello there friend"},
			message: "name too short",
			reason:  ReasonNameShort,
		},
		{
			name:    "message nine runes",
			in:      Submission{Name: "Ada", Email: "a@b.co", Message: "123456789"},
			message: "message too short",
			reason:  ReasonMessageShort,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.in)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
			assert.Equal(t, tc.message, pkgerrors.As(err).PublicMessage())
			assert.Equal(t, tc.reason, RejectionReason(err))
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	_, err := Validate(Submission{Name: "Al", Email: "x@y.z", Message: strings.Repeat("m", MinMessageLength)})
	assert.NoError(t, err)
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	// "é" is two bytes but a single rune.
	_, err := Validate(Submission{Name: "é", Message: "hello world!"})
	require.Error(t, err)
	assert.Equal(t, ReasonNameShort, RejectionReason(err))

	_, err = Validate(Submission{Name: "Zoë", Message: "ééééééééé"})
	require.Error(t, err)
	assert.Equal(t, ReasonMessageShort, RejectionReason(err))
}

func TestRejectionReasonIgnoresForeignErrors(t *testing.T) {
	assert.Empty(t, RejectionReason(nil))
	assert.Empty(t, RejectionReason(pkgerrors.New(pkgerrors.CodeConflict, "x")))
}

package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/pagination"
)

func TestDecodeSubmissionFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit?name=Jo&email=jo@x.com&message=Hello+there%21", nil)
	got, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "Jo", got.Name)
	assert.Equal(t, "jo@x.com", got.Email)
	assert.Equal(t, "Hello there!", got.Message)
}

func TestDecodeSubmissionFromForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit-form", strings.NewReader("name=Ada&email=+ada%40example.com+&message=Hello+there+friend"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestDecodeSubmissionFromJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello there friend"}`))
	req.Header.Set("Content-Type", "application/json")

	got, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.ToSubmission().Name)
}

func TestDecodeSubmissionQueryWinsOverBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit?name=FromQuery", strings.NewReader("name=FromBody&email=a%40b.co&message=Hello+there+friend"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "FromQuery", got.Name)
	assert.Equal(t, "a@b.co", got.Email)
}

func TestDecodeSubmissionRejectsBadEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit?name=Jo&email=not-an-email&message=Hello+there%21", nil)
	_, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestDecodeSubmissionMissingFields(t *testing.T) {
	_, err := DecodeSubmission(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil))
	require.Error(t, err)
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["message"])
}

func TestDecodeSubmissionHoneypotSkipsInputChecks(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit?website=spam", nil)
	got, err := DecodeSubmission(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "spam", got.Website)
}

func TestDecodeSubmissionRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	_, err := DecodeSubmission(httptest.NewRecorder(), req)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestFormValueIgnoresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit_paid?session_id=from_query", strings.NewReader("session_id=cs_test_1234567890"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	got, err := FormValue(httptest.NewRecorder(), req, "session_id")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1234567890", got)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads?limit=25", nil)
	v, err := ParseQueryInt(req, "limit", 50, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	v, err = ParseQueryInt(httptest.NewRequest(http.MethodGet, "/leads", nil), "limit", 50, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	_, err = ParseQueryInt(httptest.NewRequest(http.MethodGet, "/leads?limit=0", nil), "limit", 50, 1, 500)
	assert.Error(t, err)
	_, err = ParseQueryInt(httptest.NewRequest(http.MethodGet, "/leads?limit=abc", nil), "limit", 50, 1, 500)
	assert.Error(t, err)
}

func TestParseListParams(t *testing.T) {
	params, err := ParseListParams(httptest.NewRequest(http.MethodGet, "/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Empty(t, params.Cursor)

	cursor := pagination.EncodeCursor(pagination.Cursor{BeforeID: 42})
	params, err = ParseListParams(httptest.NewRequest(http.MethodGet, "/leads?limit=10&cursor="+cursor, nil))
	require.NoError(t, err)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, cursor, params.Cursor)

	_, err = ParseListParams(httptest.NewRequest(http.MethodGet, "/leads?limit=501", nil))
	require.Error(t, err)
	assert.Equal(t, "limit must be between 1 and 500", pkgerrors.As(err).PublicMessage())

	_, err = ParseListParams(httptest.NewRequest(http.MethodGet, "/leads?cursor=not-a-cursor", nil))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

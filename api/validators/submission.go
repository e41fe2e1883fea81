package validators

import (
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/leadintake/internal/leads"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
)

// MaxBodyBytes caps submission payloads.
const MaxBodyBytes = 64 << 10

// SubmissionRequest is the wire shape of a contact submission.
type SubmissionRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
	Website string `json:"website"`
}

func (s SubmissionRequest) ToSubmission() leads.Submission {
	return leads.Submission{
		Name:    s.Name,
		Email:   s.Email,
		Message: s.Message,
		Website: s.Website,
	}
}

// DecodeSubmission reads a submission from the query string and the request
// body (form or JSON). A field present in the query string wins over the body.
// When the honeypot is filled, input checks are skipped so the rejection is
// reported as spam downstream.
func DecodeSubmission(w http.ResponseWriter, r *http.Request) (SubmissionRequest, error) {
	var req SubmissionRequest
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := decodeJSONFields(r, &req); err != nil {
			return SubmissionRequest{}, err
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := parseForm(r); err != nil {
			return SubmissionRequest{}, err
		}
		applyValues(&req, r.PostForm)
	}
	applyValues(&req, r.URL.Query())

	req.Email = strings.TrimSpace(req.Email)
	if req.Website != "" {
		return req, nil
	}
	if err := Struct(req); err != nil {
		return SubmissionRequest{}, err
	}
	return req, nil
}

// FormValue reads a single posted field, ignoring the query string.
func FormValue(w http.ResponseWriter, r *http.Request, key string) (string, error) {
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	}
	if err := parseForm(r); err != nil {
		return "", err
	}
	return r.PostForm.Get(key), nil
}

func decodeJSONFields(r *http.Request, req *SubmissionRequest) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
		Website string `json:"website"`
	}
	if err := DecodeJSONBody(r, &body); err != nil {
		return err
	}
	req.Name, req.Email, req.Message, req.Website = body.Name, body.Email, body.Message, body.Website
	return nil
}

func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(MaxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return nil
}

func applyValues(req *SubmissionRequest, values url.Values) {
	if values == nil {
		return
	}
	if v, ok := values["name"]; ok && len(v) > 0 {
		req.Name = v[0]
	}
	if v, ok := values["email"]; ok && len(v) > 0 {
		req.Email = v[0]
	}
	if v, ok := values["message"]; ok && len(v) > 0 {
		req.Message = v[0]
	}
	if v, ok := values["website"]; ok && len(v) > 0 {
		req.Website = v[0]
	}
}

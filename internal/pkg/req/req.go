/*
Package req provides helpers for parsing browser form submissions.

Every action endpoint posts application/x-www-form-urlencoded data; ParseForm caps the body
size and reports parse failures as errs codes so handlers can re-render the form.
*/
package req

import (
	"errors"
	"net/http"
	"strings"

	"journal/internal/pkg/errs"
)

// MaxFormBytes caps the size of a submitted form body.
const MaxFormBytes int64 = 64 << 10 // 64 KB

// ParseForm limits the body to MaxFormBytes and parses the URL-encoded form into r.PostForm.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)

	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// Field returns the trimmed value of a posted form field.
func Field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostForm.Get(name))
}

// Fields returns every posted value of a repeated form field, keeping empty entries so indexes line up.
func Fields(r *http.Request, name string) []string {
	values := r.PostForm[name]
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

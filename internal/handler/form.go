package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"therapy-practice-admin/internal/invoice"
)

// FieldError reports a form field that is absent or malformed.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// form reads submitted values and remembers the first problem, so a handler
// can read every field and check err once.
type form struct {
	r   *http.Request
	err error
}

func parseForm(r *http.Request) (*form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, &FieldError{Field: "form", Msg: err.Error()}
	}
	return &form{r: r}, nil
}

// required returns the trimmed value of a field that must be submitted.
// An empty value is accepted.
func (f *form) required(name string) string {
	vs, ok := f.r.PostForm[name]
	if !ok || len(vs) == 0 {
		f.fail(name, "missing")
		return ""
	}
	return strings.TrimSpace(vs[0])
}

// nonEmpty is required plus a non-blank check.
func (f *form) nonEmpty(name string) string {
	v := f.required(name)
	if v == "" {
		f.fail(name, "required")
	}
	return v
}

func (f *form) optional(name string) string {
	return strings.TrimSpace(f.r.PostForm.Get(name))
}

func (f *form) id(name string) int64 {
	v := f.nonEmpty(name)
	if f.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		f.fail(name, "not a valid id")
		return 0
	}
	return n
}

// dateTime reads a datetime-local value and stores it with a space
// separator. Blank optional values become nil.
func (f *form) dateTime(name string, need bool) *string {
	var v string
	if need {
		v = f.nonEmpty(name)
	} else {
		v = f.optional(name)
	}
	if v == "" {
		return nil
	}
	v = invoice.NormalizeDateTime(v)
	return &v
}

func (f *form) fail(name, msg string) {
	if f.err == nil {
		f.err = &FieldError{Field: name, Msg: msg}
	}
}

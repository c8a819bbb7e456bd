// Package invoice describes the editable invoice columns and turns form
// submissions into typed column values.
package invoice

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Type string

const (
	Int      Type = "int"
	Decimal  Type = "decimal"
	Text     Type = "text"
	DateTime Type = "datetime"
	Bool     Type = "bool"
)

type Field struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Type     Type   `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

type Fields []Field

// FieldError reports a submitted value that does not fit its field.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

//go:embed fields.yaml
var defaultFields []byte

var ident = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Default returns the field list compiled into the binary.
func Default() (Fields, error) {
	return Parse(defaultFields)
}

func Parse(data []byte) (Fields, error) {
	var doc struct {
		Fields Fields `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invoice fields: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, errors.New("invoice fields: empty field list")
	}
	seen := make(map[string]bool, len(doc.Fields))
	for i, f := range doc.Fields {
		// names are spliced into SQL
		if !ident.MatchString(f.Name) || f.Name == "invoice_id" {
			return nil, fmt.Errorf("invoice fields: bad column name %q", f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("invoice fields: duplicate column %q", f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case Int, Decimal, Text, DateTime, Bool:
		case "":
			doc.Fields[i].Type = Text
		default:
			return nil, fmt.Errorf("invoice fields: %s has unknown type %q", f.Name, f.Type)
		}
		if f.Label == "" {
			doc.Fields[i].Label = f.Name
		}
	}
	return doc.Fields, nil
}

func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// Verify checks the configured fields against the table's actual columns.
// Missing columns are an error; columns the configuration does not know
// about are returned as extra.
func (fs Fields) Verify(columns []string) (extra []string, err error) {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	var missing []string
	for _, f := range fs {
		if !have[f.Name] {
			missing = append(missing, f.Name)
		}
		delete(have, f.Name)
	}
	for _, c := range columns {
		if have[c] {
			extra = append(extra, c)
		}
	}
	if len(missing) > 0 {
		return extra, fmt.Errorf("invoices table lacks configured columns: %s", strings.Join(missing, ", "))
	}
	return extra, nil
}

// Values converts a form submission into one value per field, in field
// order. A nil entry means NULL.
func (fs Fields) Values(form url.Values) ([]any, error) {
	out := make([]any, len(fs))
	for i, f := range fs {
		v, err := f.value(form.Get(f.Name))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f Field) value(raw string) (any, error) {
	if f.Type == Bool {
		if raw != "" {
			return 1, nil
		}
		return 0, nil
	}
	if raw == "" {
		if !f.Nullable {
			return nil, &FieldError{Field: f.Name, Msg: "required"}
		}
		return nil, nil
	}
	if f.isTimeLike() {
		raw = NormalizeDateTime(raw)
	}
	switch f.Type {
	case Int:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, &FieldError{Field: f.Name, Msg: "not a whole number"}
		}
		return n, nil
	case Decimal:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &FieldError{Field: f.Name, Msg: "not a number"}
		}
		return n, nil
	}
	return raw, nil
}

func (f Field) isTimeLike() bool {
	return f.Type == DateTime || strings.Contains(f.Name, "date") || strings.Contains(f.Name, "time")
}

// ScanDest returns a destination suitable for scanning this field's column.
func (f Field) ScanDest() any {
	switch f.Type {
	case Int:
		return new(*int64)
	case Decimal:
		return new(*float64)
	case Bool:
		return new(*int16)
	default:
		return new(*string)
	}
}

// FromDest unwraps a destination produced by ScanDest. NULL becomes nil.
func (f Field) FromDest(dest any) any {
	switch d := dest.(type) {
	case **int64:
		if *d == nil {
			return nil
		}
		return **d
	case **float64:
		if *d == nil {
			return nil
		}
		return **d
	case **int16:
		if *d == nil {
			return 0
		}
		return int(**d)
	case **string:
		if *d == nil {
			return nil
		}
		return **d
	}
	return nil
}

// NormalizeDateTime turns a datetime-local value ("2024-01-05T10:30") into
// the stored form ("2024-01-05 10:30"). Every "T" is replaced.
func NormalizeDateTime(v string) string {
	return strings.ReplaceAll(v, "T", " ")
}

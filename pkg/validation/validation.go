package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors collects field-scoped validation failures. The zero value is usable.
type Errors struct {
	fields map[string][]string
	order  []string
}

func New() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

func (e *Errors) Add(field, message string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	if _, seen := e.fields[field]; !seen {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], message)
}

func (e *Errors) Has(field string) bool {
	if e == nil {
		return false
	}
	_, ok := e.fields[field]
	return ok
}

func (e *Errors) Empty() bool {
	return e == nil || len(e.fields) == 0
}

// Err returns the collector as an error, or nil when nothing failed.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Fields returns the field -> messages map for the response body.
func (e *Errors) Fields() map[string][]string {
	if e == nil {
		return nil
	}
	out := make(map[string][]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (e *Errors) count() int {
	n := 0
	for _, msgs := range e.fields {
		n += len(msgs)
	}
	return n
}

// Error renders the first failure plus a count of the rest, e.g.
// "name: must be unique (and 2 more errors)".
func (e *Errors) Error() string {
	if e.Empty() {
		return "validation failed"
	}
	first := e.order[0]
	msg := fmt.Sprintf("%s: %s", first, e.fields[first][0])
	if rest := e.count() - 1; rest > 0 {
		msg += fmt.Sprintf(" (and %d more %s)", rest, plural(rest))
	}
	return msg
}

func plural(n int) string {
	if n == 1 {
		return "error"
	}
	return "errors"
}

// SortedFields lists failed field names deterministically, for logs and tests.
func (e *Errors) SortedFields() []string {
	if e == nil {
		return nil
	}
	out := append([]string(nil), e.order...)
	sort.Strings(out)
	return out
}

// Required is a small helper for create-mode checks.
func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

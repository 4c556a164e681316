package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid project catalog")

// Issue is a single problem found in a payload.
type Issue struct {
	Index int    // position of the record in the payload
	Field string // offending field, e.g. "slug"
	Msg   string
}

func (i Issue) String() string {
	return fmt.Sprintf("projects[%d].%s: %s", i.Index, i.Field, i.Msg)
}

// ValidationError reports every issue found while building a catalog.
type ValidationError struct {
	Source string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidCatalog.Error())
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	for _, issue := range e.Issues {
		b.WriteString("\n  ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrInvalidCatalog.
func (e *ValidationError) Unwrap() error { return ErrInvalidCatalog }

// HasField reports whether any issue concerns the named field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

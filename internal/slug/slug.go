// Package slug derives and validates the URL-safe identifiers notes are
// addressed by.
package slug

import (
	"fmt"
	"regexp"

	gslug "github.com/gosimple/slug"
)

// Warning is appended to the offending slug in the duplicate-slug form error.
const Warning = " - эта строка, её нужно заменить!"

// Explicit slugs may use letters, digits, hyphens and underscores, in any
// case. Derived slugs are always lowercase.
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// FieldError is a validation failure attached to a single form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Make derives a slug from a title: transliterated to ASCII, lowercased,
// non-alphanumeric runs collapsed to single hyphens, edges trimmed.
func Make(title string) string {
	return gslug.Make(title)
}

// Valid reports whether an explicitly supplied slug is URL-safe.
func Valid(s string) bool {
	return slugPattern.MatchString(s)
}

// Resolve returns the slug to store for a note with the given title.
//
// A non-empty requested slug is validated and checked against existing slugs
// via taken; a collision fails with a FieldError on the slug field whose
// message echoes the slug followed by Warning. An empty requested slug is
// derived from the title without a pre-check: the store's atomic uniqueness
// constraint is the backstop for derived collisions.
func Resolve(title, requested string, taken func(string) (bool, error)) (string, error) {
	if requested == "" {
		return Make(title), nil
	}
	if !Valid(requested) {
		return "", &FieldError{
			Field:   "slug",
			Message: fmt.Sprintf("%q не является допустимым slug", requested),
		}
	}
	exists, err := taken(requested)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &FieldError{Field: "slug", Message: requested + Warning}
	}
	return requested, nil
}

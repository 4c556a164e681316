package catalog

import (
	"fmt"
	"strings"
)

func validate(records []ProjectRecord) []Issue {
	var issues []Issue
	slugs := make(map[string]int, len(records))
	ids := make(map[int]int, len(records))

	for i, rec := range records {
		switch {
		case rec.ID == 0:
			issues = append(issues, Issue{Index: i, Field: "id", Msg: "is required"})
		case rec.ID < 0:
			issues = append(issues, Issue{Index: i, Field: "id", Msg: fmt.Sprintf("must be positive, got %d", rec.ID)})
		default:
			if first, dup := ids[rec.ID]; dup {
				issues = append(issues, Issue{Index: i, Field: "id", Msg: fmt.Sprintf("%d already used by projects[%d]", rec.ID, first)})
			} else {
				ids[rec.ID] = i
			}
		}

		switch {
		case rec.Slug == "":
			issues = append(issues, Issue{Index: i, Field: "slug", Msg: "is required"})
		case !ValidSlug(rec.Slug):
			issues = append(issues, Issue{Index: i, Field: "slug", Msg: fmt.Sprintf("%q is not URL-safe", rec.Slug)})
		default:
			if first, dup := slugs[rec.Slug]; dup {
				issues = append(issues, Issue{Index: i, Field: "slug", Msg: fmt.Sprintf("%q already used by projects[%d]", rec.Slug, first)})
			} else {
				slugs[rec.Slug] = i
			}
		}

		if strings.TrimSpace(rec.Title) == "" {
			issues = append(issues, Issue{Index: i, Field: "title", Msg: "is required"})
		}
	}
	return issues
}

// ValidSlug reports whether s consists only of RFC 3986 unreserved
// characters, so it survives a path segment without escaping.
func ValidSlug(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '-', c == '.', c == '_', c == '~':
		default:
			return false
		}
	}
	return true
}

package httpx

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"bookreview/internal/apperr"
	"bookreview/internal/pagination"
)

// QueryInt coerces a query parameter to an int. Missing or empty values
// yield def.
func QueryInt(q url.Values, key string, def int) (int, *apperr.FieldError) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}

	// cast parses with base 0; drop leading zeros so "010" stays decimal
	if trimmed := strings.TrimLeft(raw, "0"); trimmed != raw {
		if trimmed == "" || strings.HasPrefix(trimmed, ".") {
			trimmed = "0" + trimmed
		}
		raw = trimmed
	}

	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, &apperr.FieldError{
			Field:   key,
			Message: fmt.Sprintf("%s must be an integer", key),
		}
	}
	return n, nil
}

// ParsePagination reads page and limit from the query string, applies the
// defaults and validates the bounds.
func ParsePagination(q url.Values) (pagination.Params, error) {
	var fields []apperr.FieldError
	def := pagination.Default()

	page, fe := QueryInt(q, "page", def.Page)
	if fe != nil {
		fields = append(fields, *fe)
	}
	limit, fe := QueryInt(q, "limit", def.Limit)
	if fe != nil {
		fields = append(fields, *fe)
	}
	if len(fields) > 0 {
		return pagination.Params{}, apperr.Validation(ValidationMessage, fields...)
	}

	p := pagination.Params{Page: page, Limit: limit}
	if err := Validate(p); err != nil {
		return pagination.Params{}, err
	}
	// the row offset must fit in an int
	if p.Page-1 > math.MaxInt/p.Limit {
		return pagination.Params{}, apperr.Validation(ValidationMessage, apperr.FieldError{
			Field:   "page",
			Message: "page is out of range",
		})
	}
	return p, nil
}

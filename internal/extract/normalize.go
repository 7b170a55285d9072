package extract

import (
	"strings"
	"time"
	"unicode"
)

// Normalize validates and repairs a candidate field map against the schema.
// It is total: for any input, including nil, the result contains exactly the
// schema's keys. A value that fails its rule is reset to "", never guessed at.
func (s Schema) Normalize(in map[string]string) map[string]string {
	out := make(map[string]string, len(s))
	for _, rule := range s {
		out[rule.Name] = rule.apply(in[rule.Name])
	}
	return out
}

func (r FieldRule) apply(value string) string {
	if value == "" {
		return ""
	}
	switch r.Kind {
	case KindDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return ""
		}
		return value
	case KindEnum:
		for _, allowed := range r.Allowed {
			if value == allowed {
				return value
			}
		}
		return ""
	case KindIdent:
		return stripNonAlphanumeric(value)
	case KindEmail:
		if !strings.Contains(value, "@") {
			return ""
		}
		return value
	default:
		return value
	}
}

// stripNonAlphanumeric drops every rune that is not a letter or digit,
// preserving the relative order of the survivors.
func stripNonAlphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

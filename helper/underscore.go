package helper

import "unicode"

// Underscore converts a struct field name to its snake_case form, e.g.
// "RegisteredAt" -> "registered_at", "IMO" -> "imo".
func Underscore(s string) string {
	runes := []rune(s)
	var out []rune
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				out = append(out, '_')
			}
			r = unicode.ToLower(r)
		}
		out = append(out, r)
	}
	return string(out)
}

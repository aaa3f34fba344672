package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

// measurePattern accepts an optional decimal quantity followed by optional
// whitespace and at most one known unit. The quantity is required whenever
// the string is non-empty, so a bare unit like "cup" does not validate.
var measurePattern = regexp.MustCompile(
	`^(?i)(\d+(\.\d+)?)\s*(g|kg|ml|l|tbsp|tsp|cup|oz|lb|piece|slice|whole)?$`,
)

// ValidMeasure reports whether s is an acceptable ingredient quantity
// string, e.g. "100g", "2 tbsp", "1.5cup" or "250". Quantities are
// optional on ingredients, so the empty string is valid.
func ValidMeasure(s string) bool {
	if s == "" {
		return true
	}
	return measurePattern.MatchString(s)
}

// ParseMeasure splits a valid measure string into its numeric quantity and
// lowercased unit. It returns ok=false for invalid or empty strings; a
// missing unit yields an empty unit with ok=true.
func ParseMeasure(s string) (quantity float64, unit string, ok bool) {
	m := measurePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	quantity, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return quantity, strings.ToLower(m[3]), true
}

package dimension

// Resolve returns the first value in row whose key matches one of the
// candidate column names, in priority order. A key counts as a match only if
// its value is non-nil and not the empty string. Matching is exact: the
// variant list itself is the fuzzy-matching mechanism, so callers enumerate
// every capitalization and wording they accept.
func Resolve(row map[string]any, variants []string) any {
	for _, key := range variants {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value
	}
	return nil
}

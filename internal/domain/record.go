package domain

// Record is one canonical row ready for storage: a fixed-shape mapping from
// target column name to value. Nil values persist as SQL NULL.
type Record map[string]any

// Values projects the record onto an ordered column list, suitable for a
// positional bulk insert.
func (r Record) Values(columns []string) []any {
	values := make([]any, len(columns))
	for i, column := range columns {
		values[i] = r[column]
	}
	return values
}

package dimension

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvaldes/tablero/internal/domain"

	"github.com/google/uuid"
)

// Issue describes one per-row degradation: a value that was present in the
// source but could not be coerced, and was replaced by the field's default.
type Issue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MapRows maps every raw row to a canonical record for the dimension. Rows are
// independent; a malformed value never fails its row, it degrades to the
// field's default and is reported as an Issue.
func MapRows(dim Dimension, rows []map[string]any, uploadID uuid.UUID) ([]domain.Record, []Issue) {
	records := make([]domain.Record, 0, len(rows))
	var issues []Issue
	for i, row := range rows {
		record, rowIssues := MapRow(dim, row, uploadID, i+1)
		records = append(records, record)
		issues = append(issues, rowIssues...)
	}
	return records, issues
}

// MapRow maps one raw row. rowNumber is 1-based and seeds generated
// placeholder labels, so mapping the same row at the same index is idempotent.
func MapRow(dim Dimension, row map[string]any, uploadID uuid.UUID, rowNumber int) (domain.Record, []Issue) {
	record := domain.Record{"upload_id": uploadID}
	var issues []Issue

	for _, field := range dim.Fields {
		raw := Resolve(row, field.Variants)

		switch field.Kind {
		case FieldDate:
			if raw == nil {
				record[field.Column] = nil
				continue
			}
			iso, ok := NormalizeDate(raw)
			if !ok {
				record[field.Column] = nil
				issues = append(issues, Issue{Row: rowNumber, Field: field.Column, Message: fmt.Sprintf("unparseable date %q", raw)})
				continue
			}
			record[field.Column] = iso

		case FieldNumber:
			if raw == nil {
				record[field.Column] = float64(0)
				continue
			}
			value, ok := parseNumber(raw)
			if !ok {
				issues = append(issues, Issue{Row: rowNumber, Field: field.Column, Message: fmt.Sprintf("unparseable number %q", raw)})
				value = 0
			}
			record[field.Column] = value

		case FieldLabel:
			if raw == nil {
				record[field.Column] = fmt.Sprintf("%s%d", field.Prefix, rowNumber)
				continue
			}
			record[field.Column] = textValue(raw)

		case FieldClassifier:
			record[field.Column] = classify(raw, field)

		default:
			if raw == nil {
				record[field.Column] = nil
				continue
			}
			record[field.Column] = textValue(raw)
		}
	}

	// Derived fields see the fully defaulted record.
	for _, derived := range dim.Derived {
		record[derived.Column] = derived.Compute(record)
	}

	return record, issues
}

func classify(raw any, field FieldSpec) string {
	if raw == nil {
		return field.PositiveClass
	}
	text := strings.ToLower(textValue(raw))
	for _, term := range field.NegativeTerms {
		if strings.Contains(text, term) {
			return field.NegativeClass
		}
	}
	return field.PositiveClass
}

func textValue(raw any) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}

func parseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

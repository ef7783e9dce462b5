package dimension

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from 1899-12-30, which sits 25569 days
// before the Unix epoch.
const (
	serialEpochOffsetDays = 25569
	secondsPerDay         = 86400
)

var (
	dayMonthYearPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoPrefixPattern    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

	fallbackLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006/01/02",
		"02-01-2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
	}
)

// NormalizeDate converts a heterogeneous spreadsheet date value into a
// canonical "YYYY-MM-DD" string. It accepts numeric day-count serials,
// DD/MM/YYYY strings, ISO dates with or without a time component, and a small
// set of free-form layouts. The second return is false when the value is
// empty or matches no known representation; callers treat that as an unknown
// period, never as a failure.
func NormalizeDate(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case time.Time:
		return v.Format("2006-01-02"), true
	case string:
		return normalizeDateString(v)
	default:
		return normalizeDateString(fmt.Sprint(v))
	}
}

func normalizeDateString(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if m := dayMonthYearPattern.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
	}

	if m := isoPrefixPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	// Excel exports frequently surface serial dates as plain numeric strings.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return fromSerial(serial)
	}

	for _, layout := range fallbackLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("2006-01-02"), true
		}
	}

	return "", false
}

func fromSerial(serial float64) (string, bool) {
	if serial <= 0 {
		return "", false
	}
	seconds := int64((serial - serialEpochOffsetDays) * secondsPerDay)
	return time.Unix(seconds, 0).UTC().Format("2006-01-02"), true
}

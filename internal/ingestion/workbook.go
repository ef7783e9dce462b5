package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// parseRows decodes an uploaded spreadsheet into raw rows keyed by header.
// The first sheet is used for workbooks; the first non-empty line is the
// header row. Cell values stay as strings, coercion happens in the mapper.
func parseRows(fileName string, payload []byte) ([]map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx":
		return parseExcel(payload)
	case ".csv":
		return parseCSV(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseExcel(payload []byte) ([]map[string]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return tableToRows(rows)
}

func parseCSV(payload []byte) ([]map[string]any, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return tableToRows(records)
}

func tableToRows(table [][]string) ([]map[string]any, error) {
	var headers []string
	rows := []map[string]any{}

	for _, line := range table {
		if isEmptyRow(line) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(line))
			for i, cell := range line {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}

		row := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(line) {
				continue
			}
			row[header] = line[i]
		}
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, errors.New("no header row detected")
	}

	return rows, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

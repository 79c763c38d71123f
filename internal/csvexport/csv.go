// Package csvexport renders record lists as comma-separated text.
package csvexport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrNoData = errors.New("no data to export")

// Column колонка выгрузки. Key may be a dotted path such as "supplier.name".
type Column struct {
	Key    string
	Header string
}

// Record одна строка выгрузки
type Record = map[string]any

// Records converts any JSON-encodable slice (structs, maps) into records.
// Numbers keep their original textual form.
func Records(v any) ([]Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("csvexport: encode rows: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out []Record
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("csvexport: rows must be a list of objects: %w", err)
	}
	return out, nil
}

// Encode renders rows with a header line. Lines are joined by "\n" with
// no trailing newline. Without columns the keys of the first row are
// used in sorted order.
func Encode(rows []Record, columns []Column) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoData
	}
	if len(columns) == 0 {
		keys := make([]string, 0, len(rows[0]))
		for k := range rows[0] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			columns = append(columns, Column{Key: k, Header: k})
		}
	}

	lines := make([]string, 0, len(rows)+1)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	lines = append(lines, strings.Join(headers, ","))

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			cells[i] = escape(format(lookup(row, c.Key)))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n"), nil
}

// Filename returns "{base}_{YYYY-MM-DD}.csv" for the UTC date of t.
func Filename(base string, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", base, t.UTC().Format("2006-01-02"))
}

// WriteFile encodes rows into dir and returns the written path.
func WriteFile(dir, base string, rows []Record, columns []Column, now time.Time) (string, error) {
	content, err := Encode(rows, columns)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(base, now))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("csvexport: write %s: %w", path, err)
	}
	return path, nil
}

// lookup always follows a dotted key as a path, even when the row has a
// literal key with the same name.
func lookup(row Record, key string) any {
	if !strings.Contains(key, ".") {
		return row[key]
	}
	var cur any = row
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	case map[string]any, []any:
		b, _ := json.Marshal(x)
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

func escape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

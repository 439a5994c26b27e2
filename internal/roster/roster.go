// Package roster reads and writes the CSV files admins use to import
// employees in bulk.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Columns lists the header names a roster must contain, in template order.
var Columns = []string{"name", "email", "password", "phone", "startDate"}

var (
	ErrEmptyFile      = errors.New("roster file is empty")
	ErrMissingColumns = errors.New("roster header is missing required columns")
)

// Entry is one importable employee. Line is the 1-based line in the file.
type Entry struct {
	Line      int
	Name      string
	Email     string
	Password  string
	Phone     string
	StartDate string
}

// Skipped is a data line that could not be turned into an Entry.
type Skipped struct {
	Line   int
	Name   string
	Email  string
	Reason string
}

type Roster struct {
	Entries []Entry
	Skipped []Skipped
}

// Parse reads a roster. Header columns may appear in any order and extra
// columns are ignored. A line with a different number of fields than the
// header, or with any required value blank, is skipped.
func Parse(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := &Roster{Entries: []Entry{}, Skipped: []Skipped{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				out.Skipped = append(out.Skipped, Skipped{Line: parseErr.StartLine, Reason: parseErr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("read roster: %w", err)
		}
		line, _ := reader.FieldPos(0)

		get := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if len(record) != len(header) {
			out.Skipped = append(out.Skipped, Skipped{
				Line:   line,
				Name:   get("name"),
				Email:  get("email"),
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}

		entry := Entry{
			Line:      line,
			Name:      get("name"),
			Email:     get("email"),
			Password:  get("password"),
			Phone:     get("phone"),
			StartDate: get("startDate"),
		}
		if blank := entry.blankColumns(); len(blank) > 0 {
			out.Skipped = append(out.Skipped, Skipped{
				Line:   line,
				Name:   entry.Name,
				Email:  entry.Email,
				Reason: "missing " + strings.Join(blank, ", "),
			})
			continue
		}
		out.Entries = append(out.Entries, entry)
	}

	return out, nil
}

func (e Entry) blankColumns() []string {
	var blank []string
	for i, v := range []string{e.Name, e.Email, e.Password, e.Phone, e.StartDate} {
		if v == "" {
			blank = append(blank, Columns[i])
		}
	}
	return blank
}

// Template returns a roster with the required header and two sample rows.
func Template() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll([][]string{
		Columns,
		{"John Doe", "john.doe@company.com", "StrongPass123!", "1234567890", "2025-01-15"},
		{"Jane Smith", "jane.smith@company.com", "SecurePass456!", "0987654321", "2025-01-20"},
	})
	return buf.Bytes()
}

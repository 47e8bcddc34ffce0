package recipients

import (
	"errors"
	"strings"
)

// Record is one row of validated recipient data.
type Record struct {
	Name    string
	Email   string
	Company string
}

var (
	// ErrMissingColumns indicates the recipient list lacks a required column.
	ErrMissingColumns = errors.New("recipient list must have Name and Email columns")

	// ErrEmptyFile indicates the recipient list has no header row.
	ErrEmptyFile = errors.New("recipient list is empty")

	// ErrUnsupportedFormat indicates the file extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported recipient list format")
)

// Column headers expected in the first row.
const (
	colName    = "Name"
	colEmail   = "Email"
	colCompany = "Company"
)

// FromRows converts raw tabular data into recipient records. The first row is
// the header and must contain both Name and Email columns; otherwise
// ErrMissingColumns is returned and no records are produced. A missing Company
// column yields records with an empty Company value.
//
// Rows whose Email cell is empty are dropped. Empty Name or Company cells pass
// through as empty strings. Row order is preserved.
func FromRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, ok := columns[h]; !ok {
			columns[h] = i
		}
	}

	nameIdx, hasName := columns[colName]
	emailIdx, hasEmail := columns[colEmail]
	if !hasName || !hasEmail {
		return nil, ErrMissingColumns
	}
	companyIdx, hasCompany := columns[colCompany]

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		email := strings.TrimSpace(cell(row, emailIdx))
		if email == "" {
			continue
		}

		rec := Record{
			Name:  strings.TrimSpace(cell(row, nameIdx)),
			Email: email,
		}
		if hasCompany {
			rec.Company = strings.TrimSpace(cell(row, companyIdx))
		}
		records = append(records, rec)
	}

	return records, nil
}

// cell returns the value at index i, tolerating short rows. Spreadsheet
// parsers omit trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

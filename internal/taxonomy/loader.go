package taxonomy

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Entry is one row of the classification reference table. Immutable for the
// process lifetime.
type Entry struct {
	Sector         string
	Industry       string
	SubIndustry    string
	SICCode        string
	SICDescription string
}

// requiredColumns maps canonical column names to the header spellings we
// accept. The upstream reference table capitalizes "Industry"; headers are
// matched case-insensitively.
var requiredColumns = []string{"sector", "industry", "sub_industry", "sic_code", "sic_description"}

// LoadCSV reads the reference table from path. Rows missing any of the three
// level values are skipped; a missing file, missing columns, or zero usable
// rows is a fatal *LoadError.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: "cannot open reference table " + path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Message: "cannot read header row", Cause: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &LoadError{Message: "reference table is missing column " + name}
		}
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Message: "malformed reference row", Cause: err}
		}

		field := func(name string) string {
			idx := cols[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		entry := Entry{
			Sector:         field("sector"),
			Industry:       field("industry"),
			SubIndustry:    field("sub_industry"),
			SICCode:        field("sic_code"),
			SICDescription: field("sic_description"),
		}
		// Rows with a blank level value cannot participate in any level scan.
		if entry.Sector == "" || entry.Industry == "" || entry.SubIndustry == "" {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &LoadError{Message: "reference table has no usable rows"}
	}
	return entries, nil
}

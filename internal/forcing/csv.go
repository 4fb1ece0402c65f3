package forcing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/chrissnell/dikeprep/internal/hydro"
)

// ReadCSV reads forcing from CSV
func ReadCSV(r io.Reader) (*hydro.Conditions, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return parseTable(rows)
}

// ReadCSVFile reads forcing from the CSV file at path
func ReadCSVFile(path string) (*hydro.Conditions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteCSV writes forcing in the layout ReadCSV reads
func WriteCSV(w io.Writer, c *hydro.Conditions) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows(c) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

package autocert

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultNamesColumn = "name"

// ReadCSV reads and parses a CSV file, returning the data as a slice of string slices.
// Each inner slice represents a row of the CSV.
func ReadCSV(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows may have fewer or more fields than the header
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return records, nil
}

// Converts CSV records to a slice of maps.
// The first row is assumed to be the header, and its values are used as keys.
// Duplicate headers get a numeric suffix: "name", "name_2", ...
func ParseCSVToMap(records [][]string) ([]map[string]string, error) {
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := records[0]
	headerCount := make(map[string]int)

	// Check for duplicate headers and rename them
	for i, header := range headers {
		if count, exists := headerCount[header]; exists {
			headerCount[header]++
			headers[i] = fmt.Sprintf("%s_%d", header, count+2)
		} else {
			headerCount[header] = 0
		}
	}

	result := make([]map[string]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		row := make(map[string]string)
		// Fill the map with header keys and corresponding values
		for j := 0; j < len(headers); j++ {
			if j < len(records[i]) {
				row[headers[j]] = records[i][j]
			} else {
				// Handle missing values
				row[headers[j]] = ""
			}
		}
		result = append(result, row)
	}

	return result, nil
}

// NamesFromCSV returns the values of column in row order. The header match ignores case and surrounding spaces.
func NamesFromCSV(records [][]string, column string) ([]string, error) {
	if column == "" {
		column = DefaultNamesColumn
	}
	if len(records) == 0 {
		return []string{}, nil
	}

	header := ""
	for _, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			header = h
			break
		}
	}
	if header == "" {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	rows, err := ParseCSVToMap(records)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row[header])
	}

	return names, nil
}

// ReadNamesFile reads raw names from a .csv file (one column) or from any
// other file with one name per line. Names are not normalized here.
func ReadNamesFile(path, column string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err := ReadCSV(path)
		if err != nil {
			return nil, err
		}
		return NamesFromCSV(records, column)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading names: %w", err)
	}

	return names, nil
}

package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/vocabsrs/internal/store"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath    string // Path to the Excel or CSV file
	FrontColumn string // Column with the front text (the word)
	BackColumn  string // Column with the back text (the translation)
	IDColumn    string // Optional column with a stable id; front text is used when empty
	SheetName   string // Name of the sheet to import
	StartRow    int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FrontColumn: "A",
		BackColumn:  "B",
		IDColumn:    "C",
		SheetName:   "Sheet1",
		StartRow:    2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportItems imports vocabulary entries from an Excel or CSV file, entering
// each one into the study cycle with seed scheduling values. Entries whose id
// is already in the cycle are skipped, never reset.
func ImportItems(config ImportConfig, st *store.Store) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config, st)
	}

	return importFromExcel(config, st)
}

// importFromExcel imports entries from an Excel file
func importFromExcel(config ImportConfig, st *store.Store) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, st, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports entries from a CSV file
func importFromCSV(config ImportConfig, st *store.Store) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, st, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow enters a single row into the study cycle
func processRow(row []string, config ImportConfig, st *store.Store, result *ImportResult) error {
	var front, back, id string

	if colIdx := columnToIndex(config.FrontColumn); colIdx >= 0 && colIdx < len(row) {
		front = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.BackColumn); colIdx >= 0 && colIdx < len(row) {
		back = strings.TrimSpace(row[colIdx])
	}
	if config.IDColumn != "" {
		if colIdx := columnToIndex(config.IDColumn); colIdx >= 0 && colIdx < len(row) {
			id = strings.TrimSpace(row[colIdx])
		}
	}

	if front == "" || back == "" {
		result.Skipped++
		return nil
	}
	if id == "" {
		id = front
	}

	_, err := st.Create(id, front, back, time.Now())
	if errors.Is(err, store.ErrAlreadyExists) {
		// Re-importing an existing list must not reset progress
		result.Skipped++
		return nil
	}
	if err != nil {
		return err
	}

	result.Created++
	return nil
}

// columnToIndex converts a column letter ("A", "B", ..., "AA") to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}

	index := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		index = index*26 + int(ch-'A'+1)
	}
	return index - 1
}

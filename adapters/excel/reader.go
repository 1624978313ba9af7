package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mbtidash/internal/errors"
	"mbtidash/internal/logging"

	"github.com/xuri/excelize/v2"
)

// Records is a header row plus data rows, all cells kept as raw strings.
// Every row has exactly len(Headers) cells.
type Records struct {
	Headers []string
	Rows    [][]string
}

// DataReader handles reading CSV and Excel files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader; the format is chosen by file extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRecords reads the whole file. A missing file yields an INPUT_MISSING error.
func (r *DataReader) ReadRecords() (*Records, error) {
	logging.Debugf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputMissing(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

func (r *DataReader) readCSV() (*Records, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	return ParseCSV(file)
}

// ParseCSV reads CSV content with a header row.
func ParseCSV(in io.Reader) (*Records, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read CSV: %w", err))
	}
	logging.TimeTrack(readStart, fmt.Sprintf("[DataReader] CSV read (%d rows)", len(rows)))

	return processRows(rows)
}

// readExcel reads the first sheet of the workbook
func (r *DataReader) readExcel() (*Records, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("Excel file has no sheets")
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err))
	}
	logging.TimeTrack(readStart, fmt.Sprintf("[DataReader] sheet %s read (%d rows)", sheets[0], len(rows)))

	return processRows(rows)
}

// processRows trims headers and pads short rows. Rows longer than the header are rejected.
func processRows(rows [][]string) (*Records, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInput("file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		headers[i] = strings.TrimSpace(header)
	}
	if len(headers) < 2 {
		return nil, errors.InvalidInput("file needs a label column and at least one value column")
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > len(headers) {
			return nil, errors.InvalidInput(fmt.Sprintf("line %d has %d fields, header has %d", i+1, len(row), len(headers)))
		}
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(headers))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, cells)
	}

	logging.Debugf("[DataReader] processed %d columns, %d rows", len(headers), len(dataRows))

	return &Records{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

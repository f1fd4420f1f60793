package survey

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// MediaTypeXLSX is the content type spreadsheets are uploaded with.
const MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// FormatForMediaType maps an HTTP Content-Type onto a format. An empty
// content type is treated as JSON.
func FormatForMediaType(contentType string) (Format, error) {
	if strings.TrimSpace(contentType) == "" {
		return FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	switch mt {
	case "application/json":
		return FormatJSON, nil
	case "text/csv", "application/csv":
		return FormatCSV, nil
	case "text/tab-separated-values":
		return FormatTSV, nil
	case MediaTypeXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, mt)
}

// MediaType is the inverse of FormatForMediaType.
func (f Format) MediaType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatTSV:
		return "text/tab-separated-values"
	case FormatXLSX:
		return MediaTypeXLSX
	}
	return "application/json"
}

// Load reads and parses the survey at path.
func Load(path string) (*Survey, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("survey.Load: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("survey.Load: %w", err)
	}
	s, err := parse(data, format)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse reads a survey body of the given format from r.
func Parse(r io.Reader, format Format) (*Survey, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("survey.Parse: read body: %w", err)
	}
	return parse(data, format)
}

func parse(data []byte, format Format) (*Survey, error) {
	var (
		s   Survey
		err error
	)
	switch format {
	case FormatCSV:
		s, err = parseDelimited(data, ',')
	case FormatTSV:
		s, err = parseDelimited(data, '\t')
	case FormatXLSX:
		s, err = parseWorkbook(data)
	case FormatJSON:
		s, err = parseJSON(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	s.Hash = "sha256:" + hex.EncodeToString(sum[:])
	s.Format = format
	return &s, nil
}

func parseDelimited(data []byte, delimiter rune) (Survey, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return Survey{}, fmt.Errorf("survey: read delimited: %w", err)
	}
	return fromRows(rows)
}

func parseWorkbook(data []byte) (Survey, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Survey{}, fmt.Errorf("survey: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Survey{}, ErrMissingColumns
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Survey{}, fmt.Errorf("survey: read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

type columns struct {
	group, specie, count int
}

func findColumns(header []string) (columns, error) {
	cols := columns{group: -1, specie: -1, count: -1}
	for i, h := range header {
		switch strings.ToLower(Normalize(h)) {
		case "group":
			cols.group = i
		case "specie", "species":
			cols.specie = i
		case "count":
			cols.count = i
		}
	}
	if cols.group < 0 || cols.specie < 0 || cols.count < 0 {
		return cols, ErrMissingColumns
	}
	return cols, nil
}

func fromRows(rows [][]string) (Survey, error) {
	if len(rows) == 0 {
		return Survey{}, ErrMissingColumns
	}
	cols, err := findColumns(rows[0])
	if err != nil {
		return Survey{}, err
	}

	var s Survey
	for i, row := range rows[1:] {
		line := i + 2
		specie := Normalize(cell(row, cols.specie))
		if specie == "" {
			continue
		}
		raw := strings.TrimSpace(cell(row, cols.count))
		if raw == "" {
			return Survey{}, &RowError{Row: line, Reason: fmt.Sprintf("count for %q is missing", specie)}
		}
		count, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Survey{}, &RowError{Row: line, Reason: fmt.Sprintf("count %q is not a number", raw)}
		}
		s, err = withRow(s, Entry{Group: cell(row, cols.group), Specie: specie, Count: count}, line)
		if err != nil {
			return Survey{}, err
		}
	}
	return s, nil
}

type document struct {
	Species *[]Entry `json:"species"`
}

// MarshalJSON encodes the records in the document shape parseJSON reads,
// which is also the request body of the assessments endpoint.
func (s Survey) MarshalJSON() ([]byte, error) {
	entries := s.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(document{Species: &entries})
}

func parseJSON(data []byte) (Survey, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return Survey{}, fmt.Errorf("survey: decode json: %w", err)
	}
	if doc.Species == nil {
		return Survey{}, fmt.Errorf("survey: json document has no \"species\" array: %w", ErrMissingColumns)
	}

	var s Survey
	for i, e := range *doc.Species {
		if Normalize(e.Specie) == "" {
			continue
		}
		var err error
		if s, err = withRow(s, e, i+1); err != nil {
			return Survey{}, err
		}
	}
	return s, nil
}

func withRow(s Survey, e Entry, line int) (Survey, error) {
	next, err := s.WithEntry(e)
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		rowErr.Row = line
	}
	return next, err
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Package reader loads delimited text exports, handling the character
// encodings the source spreadsheets actually ship in: UTF-8 with or
// without BOM, and EUC-KR (the CP949 exports decode under it).
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// LoadError means a whole input source is unreadable. Fatal to that source
// only: callers skip the source and proceed with the rest.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a CSV file and returns its header row plus the remaining
// rows keyed by header. Rows shorter than the header are padded with empty
// strings; longer rows keep only the named columns.
func ReadCSV(path string) ([]string, []map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{File: path, Err: err}
	}

	decoded, err := decode(data)
	if err != nil {
		return nil, nil, &LoadError{File: path, Err: err}
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, &LoadError{File: path, Err: err}
	}
	if len(records) == 0 {
		return nil, nil, &LoadError{File: path, Err: fmt.Errorf("empty file")}
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// decode tries UTF-8 (stripping a BOM) first, then EUC-KR.
func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("no supported encoding: %w", err)
	}
	return decoded, nil
}

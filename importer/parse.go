// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("importer: unsupported file format")
	// ErrEmptyFile is returned when the spreadsheet holds no rows at all.
	ErrEmptyFile = errors.New("importer: file contains no rows")
)

// Parse reads a guest spreadsheet into raw rows. The format is chosen by
// file extension: .csv is parsed directly, .xlsx through the first worksheet.
// Legacy .xls is not supported and callers should tell users to re-save.
func Parse(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	case ".xlsx":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("importer: read file: %w", err)
		}
		return parseXLSX(bytes.NewReader(data), int64(len(data)))
	default:
		return nil, ErrUnsupportedFormat
	}
}

func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	// Guest lists in the wild have ragged rows; don't enforce a width.
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// SampleRows returns up to n leading rows for column inference.
func SampleRows(rows [][]string, n int) [][]string {
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n]
}

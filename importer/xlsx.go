// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Minimal XLSX reader: first worksheet only, shared strings and inline
// strings, no styles or formulas. Enough for guest lists exported from
// common spreadsheet tools.

type xlsxSST struct {
	Items []struct {
		T string `xml:"t"`
		R []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxSheet struct {
	Rows []struct {
		R     string `xml:"r,attr"`
		Cells []struct {
			R  string `xml:"r,attr"`
			T  string `xml:"t,attr"`
			V  string `xml:"v"`
			Is struct {
				T string `xml:"t"`
			} `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

func parseXLSX(r io.ReaderAt, size int64) ([][]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("importer: open xlsx: %w", err)
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return nil, err
	}

	sheetFile := firstSheet(zr)
	if sheetFile == nil {
		return nil, fmt.Errorf("importer: xlsx has no worksheet")
	}

	var sheet xlsxSheet
	if err := decodeZipXML(sheetFile, &sheet); err != nil {
		return nil, fmt.Errorf("importer: parse worksheet: %w", err)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, xr := range sheet.Rows {
		width := 0
		for _, c := range xr.Cells {
			if col := cellColumn(c.R); col+1 > width {
				width = col + 1
			}
		}
		row := make([]string, width)
		for _, c := range xr.Cells {
			col := cellColumn(c.R)
			switch c.T {
			case "s": // shared string table reference
				idx, err := strconv.Atoi(c.V)
				if err == nil && idx >= 0 && idx < len(shared) {
					row[col] = shared[idx]
				}
			case "inlineStr":
				row[col] = c.Is.T
			default:
				row[col] = c.V
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func readSharedStrings(zr *zip.Reader) ([]string, error) {
	for _, f := range zr.File {
		if f.Name != "xl/sharedStrings.xml" {
			continue
		}
		var sst xlsxSST
		if err := decodeZipXML(f, &sst); err != nil {
			return nil, fmt.Errorf("importer: parse shared strings: %w", err)
		}
		out := make([]string, len(sst.Items))
		for i, si := range sst.Items {
			if len(si.R) > 0 { // rich text runs
				var sb strings.Builder
				for _, run := range si.R {
					sb.WriteString(run.T)
				}
				out[i] = sb.String()
			} else {
				out[i] = si.T
			}
		}
		return out, nil
	}
	return nil, nil
}

// firstSheet picks the lowest-numbered worksheet part. Sheet order in
// workbook.xml is ignored; sheet1.xml is the first sheet in every export
// we care about.
func firstSheet(zr *zip.Reader) *zip.File {
	var candidates []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates[0]
}

func decodeZipXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// cellColumn converts a cell reference like "C12" to its zero-based column.
func cellColumn(ref string) int {
	col := 0
	for _, ch := range ref {
		if ch < 'A' || ch > 'Z' {
			break
		}
		col = col*26 + int(ch-'A') + 1
	}
	if col == 0 {
		return 0
	}
	return col - 1
}

// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletamer/server/llm"
)

func intptr(i int) *int { return &i }

func TestParseCSV(t *testing.T) {
	in := "Name,Phone\nAda Lovelace,+1 555 0100\nAlan Turing,\n"
	rows, err := Parse("guests.csv", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ada Lovelace", "+1 555 0100"}, rows[1])
}

func TestParseCSVRaggedRows(t *testing.T) {
	in := "Name,Phone,Notes\nAda Lovelace\nAlan Turing,+1 555 0101\n"
	rows, err := Parse("guests.csv", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ada Lovelace"}, rows[1])
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse("guests.xls", strings.NewReader("legacy"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("guests.pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// buildXLSX assembles a minimal .xlsx archive with one worksheet using a
// shared string table, the way spreadsheet tools export.
func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()

	var shared []string
	index := map[string]int{}
	ref := func(s string) int {
		if i, ok := index[s]; ok {
			return i
		}
		index[s] = len(shared)
		shared = append(shared, s)
		return index[s]
	}

	var sheet strings.Builder
	sheet.WriteString(`<?xml version="1.0"?><worksheet><sheetData>`)
	for ri, row := range rows {
		sheet.WriteString(`<row r="` + itoa(ri+1) + `">`)
		for ci, val := range row {
			if val == "" {
				continue
			}
			cell := colName(ci) + itoa(ri+1)
			sheet.WriteString(`<c r="` + cell + `" t="s"><v>` + itoa(ref(val)) + `</v></c>`)
		}
		sheet.WriteString(`</row>`)
	}
	sheet.WriteString(`</sheetData></worksheet>`)

	var sst strings.Builder
	sst.WriteString(`<?xml version="1.0"?><sst>`)
	for _, s := range shared {
		sst.WriteString(`<si><t>` + s + `</t></si>`)
	}
	sst.WriteString(`</sst>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"xl/worksheets/sheet1.xml": sheet.String(),
		"xl/sharedStrings.xml":     sst.String(),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func colName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

func TestParseXLSX(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"Name", "Phone"},
		{"Ada Lovelace", "+1 555 0100"},
		{"Alan Turing", ""},
	})

	rows, err := Parse("guests.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ada Lovelace", rows[1][0])
	assert.Equal(t, "+1 555 0100", rows[1][1])
	assert.Equal(t, "Alan Turing", rows[2][0])
}

func TestCellColumn(t *testing.T) {
	assert.Equal(t, 0, cellColumn("A1"))
	assert.Equal(t, 2, cellColumn("C12"))
	assert.Equal(t, 26, cellColumn("AA3"))
}

func TestMapRows(t *testing.T) {
	rows := [][]string{
		{"Name", "RSVP", "Phone"},
		{"Ada Lovelace", "yes", "+1 555 0100"},
		{"   ", "no", "+1 555 0199"}, // blank name, skipped
		{"Alan Turing", "yes", ""},
	}
	m := &llm.ColumnMapping{NameIndex: intptr(0), PhoneIndex: intptr(2), HasHeader: true}

	guests := MapRows(rows, m)
	require.Len(t, guests, 2)
	assert.Equal(t, "Ada Lovelace", guests[0].FullName)
	require.NotNil(t, guests[0].Phone)
	assert.Equal(t, "+1 555 0100", *guests[0].Phone)
	assert.Equal(t, "Alan Turing", guests[1].FullName)
	assert.Nil(t, guests[1].Phone)
}

func TestMapRowsNoHeader(t *testing.T) {
	rows := [][]string{{"Ada Lovelace"}, {"Alan Turing"}}
	m := &llm.ColumnMapping{NameIndex: intptr(0), HasHeader: false}

	guests := MapRows(rows, m)
	assert.Len(t, guests, 2)
}

func TestDetectGroups(t *testing.T) {
	rows := [][]string{
		{"Name", "Family", "Phone"},
		{"Ada Lovelace", "Byron", ""},
		{"Annabella Byron", "Byron", ""},
		{"Alan Turing", "Turing", ""},
		{"Grace Hopper", "", ""},
	}
	m := &llm.ColumnMapping{NameIndex: intptr(0), PhoneIndex: intptr(2), HasHeader: true}
	guests := MapRows(rows, m)

	groups := DetectGroups(rows, m, guests)
	require.Len(t, groups, 2)
	assert.Equal(t, "Byron", groups[0].Name)
	assert.Equal(t, []string{"Ada Lovelace", "Annabella Byron"}, groups[0].GuestNames)
	assert.Equal(t, "Turing", groups[1].Name)

	require.NotNil(t, guests[0].Group)
	assert.Equal(t, "Byron", *guests[0].Group)
	assert.Nil(t, guests[3].Group)
}

func TestDetectGroupsNoSharedValues(t *testing.T) {
	rows := [][]string{
		{"Ada Lovelace", "note one"},
		{"Alan Turing", "note two"},
	}
	m := &llm.ColumnMapping{NameIndex: intptr(0)}
	guests := MapRows(rows, m)

	assert.Empty(t, DetectGroups(rows, m, guests))
}

func TestMatchGroupToTable(t *testing.T) {
	tests := []struct {
		group, table string
		want         bool
	}{
		{"Byron Family", "Byron", true},    // table name inside group
		{"Head", "Head Table", true},       // group inside table name
		{"Group 3", "Table 3", true},       // embedded number match
		{"table-7", "Table 7", true},       // punctuation stripped
		{"Byron Family", "Table 1", false}, // nothing in common
		{"Group 3", "Table 13", false},     // 3 != 13
		{"", "Table 1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchGroupToTable(tt.group, tt.table),
			"group=%q table=%q", tt.group, tt.table)
	}
}

// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"

	"github.com/tabletamer/server/models"
)

// tablePalette is the fixed set of table colors, cycled when an event has
// more tables than colors.
var tablePalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9", "#F8B739", "#52B788",
	"#E76F51", "#2A9D8F", "#E9C46A", "#F4A261", "#264653", "#8E7DBE",
}

// TableColor returns the palette color for the i-th table (zero-based).
func TableColor(i int) string {
	return tablePalette[i%len(tablePalette)]
}

// TableNames produces n table names under the given convention. Unknown
// conventions fall back to numbers.
func TableNames(convention, customPrefix string, n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		switch convention {
		case models.NamingLetters:
			names[i] = "Table " + letterName(i)
		case models.NamingRoman:
			names[i] = "Table " + romanName(i+1)
		case models.NamingCustom:
			prefix := strings.TrimSpace(customPrefix)
			if prefix == "" {
				prefix = "Table"
			}
			names[i] = fmt.Sprintf("%s %d", prefix, i+1)
		default:
			names[i] = fmt.Sprintf("Table %d", i+1)
		}
	}
	return names
}

// letterName follows spreadsheet column naming: A..Z, AA, AB...
func letterName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{50, "L"}, {40, "XL"}, {10, "X"}, {9, "IX"},
	{5, "V"}, {4, "IV"}, {1, "I"},
}

func romanName(n int) string {
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return sb.String()
}

// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"regexp"
	"strings"

	"github.com/tabletamer/server/llm"
	"github.com/tabletamer/server/models"
)

// MapRows turns raw spreadsheet rows into importable guests using the
// inferred column mapping. The header row is dropped when flagged, and rows
// whose name cell is blank are skipped rather than imported as empty guests.
func MapRows(rows [][]string, m *llm.ColumnMapping) []models.ImportedGuest {
	if m.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	guests := make([]models.ImportedGuest, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, *m.NameIndex))
		if name == "" {
			continue
		}
		g := models.ImportedGuest{FullName: name}
		if m.PhoneIndex != nil {
			if phone := strings.TrimSpace(cell(row, *m.PhoneIndex)); phone != "" {
				g.Phone = &phone
			}
		}
		guests = append(guests, g)
	}
	return guests
}

// DetectGroups looks for a grouping column (family, party, side of the
// aisle) among the columns the mapping did not claim: the first column where
// at least two rows share the same non-empty trimmed value. Returns the
// groups in first-seen order, with guests annotated in place.
func DetectGroups(rows [][]string, m *llm.ColumnMapping, guests []models.ImportedGuest) []models.ImportGroup {
	if m.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	groupCol := findGroupColumn(rows, m)
	if groupCol < 0 {
		return nil
	}

	// Walk the rows in the same order MapRows did so guest indexes line up.
	byName := map[string][]string{}
	var order []string
	gi := 0
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, *m.NameIndex))
		if name == "" {
			continue
		}
		group := strings.TrimSpace(cell(row, groupCol))
		if group != "" {
			if gi < len(guests) {
				g := group
				guests[gi].Group = &g
			}
			if _, seen := byName[group]; !seen {
				order = append(order, group)
			}
			byName[group] = append(byName[group], name)
		}
		gi++
	}

	groups := make([]models.ImportGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, models.ImportGroup{Name: name, GuestNames: byName[name]})
	}
	return groups
}

func findGroupColumn(rows [][]string, m *llm.ColumnMapping) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	for col := 0; col < width; col++ {
		if col == *m.NameIndex || (m.PhoneIndex != nil && col == *m.PhoneIndex) {
			continue
		}
		counts := map[string]int{}
		for _, row := range rows {
			if v := strings.TrimSpace(cell(row, col)); v != "" {
				counts[v]++
			}
		}
		for _, n := range counts {
			if n >= 2 {
				return col
			}
		}
	}
	return -1
}

var digitRun = regexp.MustCompile(`\d+`)

// MatchGroupToTable reports whether a group label plausibly refers to a
// table: normalized substring containment either direction, or failing
// that, equality of the first embedded numbers ("Table 3" vs "Group 3").
// Non-matches are silent; the guests just stay unassigned.
func MatchGroupToTable(groupName, tableName string) bool {
	g := normalize(groupName)
	t := normalize(tableName)
	if g == "" || t == "" {
		return false
	}
	if strings.Contains(g, t) || strings.Contains(t, g) {
		return true
	}

	gn := digitRun.FindString(groupName)
	tn := digitRun.FindString(tableName)
	return gn != "" && gn == tn
}

func normalize(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package importer parses guest spreadsheets and maps rows to guests.

Parse reads CSV directly and XLSX through a minimal first-worksheet reader
(shared strings and inline strings only — no formulas, no styles). Legacy
.xls is rejected; users are told to re-save.

Given a column mapping from the llm package, MapRows produces importable
guests (header dropped when flagged, blank-name rows skipped) and
DetectGroups finds a grouping column: the first unclaimed column where at
least two rows share a value. MatchGroupToTable is the deliberately fuzzy
group-to-table matcher used when an import seats whole groups.
*/
package importer

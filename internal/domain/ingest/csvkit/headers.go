package csvkit

import "strings"

// FieldSpellings declares, per canonical field, the header spellings a
// dialect accepts in priority order. The tables are data, not logic: a
// dialect extends its reach by adding spellings, never by new code paths.
type FieldSpellings map[string][]string

// MapHeaders resolves each canonical field to a zero-based column index.
// Comparison is case-insensitive and whitespace-trimmed; the first
// spelling in declaration order wins. Fields with no matching column are
// simply absent from the returned map - the dialect normalizers decide
// whether that is fatal for a given row.
func MapHeaders(header RawRow, spellings FieldSpellings) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	cols := make(map[string]int, len(spellings))
	for field, variants := range spellings {
		for _, variant := range variants {
			want := normalizeHeader(variant)
			idx := indexOf(normalized, want)
			if idx >= 0 {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

// UnclaimedColumns reports header columns no canonical field claimed.
// Diagnostic only; core correctness never depends on it.
func UnclaimedColumns(header RawRow, spellings FieldSpellings) []string {
	claimed := make(map[int]bool)
	for _, idx := range MapHeaders(header, spellings) {
		claimed[idx] = true
	}

	var unclaimed []string
	for i, h := range header {
		if !claimed[i] {
			unclaimed = append(unclaimed, strings.TrimSpace(h))
		}
	}
	return unclaimed
}

// Field returns the trimmed cell for a mapped column, or "" when the
// field is unmapped or the row is short.
func Field(row RawRow, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func indexOf(haystack []string, want string) int {
	for i, h := range haystack {
		if h == want {
			return i
		}
	}
	return -1
}

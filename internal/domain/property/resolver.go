// Package property maps free-text property and listing names from the
// platform exports to short internal property codes. The mapping is
// data, not logic: operators extend it via the CSV or YAML table without
// code changes.
package property

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/staybooks/staybooks/internal/domain/reservation"
)

// Entry is one row of the property table. Exact names are matched first;
// Substring entries are fuzzy fallbacks checked in table order, so an
// overlapping name like "Stephansdom II" must be listed before the bare
// "Stephansdom".
type Entry struct {
	Name      string `csv:"name" yaml:"name"`
	Code      string `csv:"code" yaml:"code"`
	Substring string `csv:"substring" yaml:"substring,omitempty"`
}

// Table is the ordered property mapping.
type Table []Entry

// Resolver resolves listing names to property codes: exact match, then
// ordered case-insensitive substring heuristics, then the input
// unchanged.
type Resolver struct {
	exact      map[string]string
	heuristics []Entry // table order preserved
}

// NewResolver builds a resolver from a table, preserving entry order for
// the substring phase.
func NewResolver(table Table) *Resolver {
	r := &Resolver{exact: make(map[string]string, len(table))}
	for _, e := range table {
		if e.Name != "" {
			r.exact[strings.ToLower(strings.TrimSpace(e.Name))] = e.Code
		}
		if e.Substring != "" {
			r.heuristics = append(r.heuristics, e)
		}
	}
	return r
}

// Resolve maps a property/listing name to its code. Codes pass through
// unchanged: resolving an already-resolved code is a no-op because codes
// never appear in the table as names or substrings.
func (r *Resolver) Resolve(name string, _ reservation.Source) string {
	trimmed := strings.TrimSpace(name)
	if code, ok := r.exact[strings.ToLower(trimmed)]; ok {
		return code
	}

	lower := strings.ToLower(trimmed)
	for _, h := range r.heuristics {
		if strings.Contains(lower, strings.ToLower(h.Substring)) {
			return h.Code
		}
	}
	return trimmed
}

// Suggest ranks table names by fuzzy similarity to an unresolved input.
// Diagnostic only; Resolve never consults it.
func (r *Resolver) Suggest(name string, limit int) []string {
	targets := make([]string, 0, len(r.exact))
	for n := range r.exact {
		targets = append(targets, n)
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(name), targets)
	sort.Sort(ranks)

	suggestions := make([]string, 0, limit)
	for _, rank := range ranks {
		suggestions = append(suggestions, rank.Target)
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions
}

// LoadTableCSV reads a property table from CSV with name,code,substring
// columns.
func LoadTableCSV(r io.Reader) (Table, error) {
	var table Table
	if err := gocsv.Unmarshal(r, &table); err != nil {
		return nil, fmt.Errorf("failed to parse property table: %w", err)
	}
	return table, nil
}

// LoadTableYAML reads a property table from a YAML list.
func LoadTableYAML(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse property table: %w", err)
	}
	return table, nil
}

// DefaultTable is the built-in mapping for the currently managed
// apartments. Overlapping names are ordered most-specific first.
func DefaultTable() Table {
	return Table{
		{Name: "Apartment Stephansdom II", Code: "STD2", Substring: "stephansdom ii"},
		{Name: "Apartment Stephansdom", Code: "STD1", Substring: "stephansdom"},
		{Name: "Studio Naschmarkt Deluxe", Code: "NAS2", Substring: "naschmarkt deluxe"},
		{Name: "Studio Naschmarkt", Code: "NAS1", Substring: "naschmarkt"},
		{Name: "Belvedere Garden Suite", Code: "BEL1", Substring: "belvedere"},
		{Name: "Prater Panorama Loft", Code: "PRA1", Substring: "prater"},
	}
}

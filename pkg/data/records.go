package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"electviz/pkg/table"
)

var errNoHeader = errors.New("no header row")

// missing lists the cell values read as "no value".
var missing = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "NULL": {}, "null": {}, "#N/A": {},
}

// IsMissing reports whether a raw cell holds no value.
func IsMissing(s string) bool {
	_, ok := missing[strings.TrimSpace(s)]
	return ok
}

// FromRecords builds a Table from raw string records whose first record is
// the header. A column is numeric when every present cell parses as a
// float; otherwise it is categorical. Rows shorter than the header are
// padded with missing cells.
func FromRecords(records [][]string) (*table.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, errNoHeader
	}
	header := headerNames(records[0])
	rows := records[1:]
	for i, rec := range rows {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(rec), len(header))
		}
	}

	cols := make([]table.Column, len(header))
	for c, name := range header {
		raw := make([]string, len(rows))
		for r, rec := range rows {
			if c < len(rec) {
				raw[r] = strings.TrimSpace(rec[c])
			}
		}
		cols[c] = inferColumn(name, raw)
	}
	return table.New(cols...)
}

func inferColumn(name string, raw []string) table.Column {
	nums := make([]float64, len(raw))
	for i, v := range raw {
		if IsMissing(v) {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			strs := make([]string, len(raw))
			for k, s := range raw {
				if !IsMissing(s) {
					strs[k] = s
				}
			}
			return table.CategoricalColumn(name, strs)
		}
		nums[i] = f
	}
	return table.NumericColumn(name, nums)
}

// headerNames fills blank names and disambiguates repeats with ".1", ".2", ...
// A leading byte order mark is dropped.
func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	seen := make(map[string]int, len(rec))
	for i, h := range rec {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		base := h
		for {
			if _, taken := seen[h]; !taken {
				break
			}
			seen[base]++
			h = fmt.Sprintf("%s.%d", base, seen[base])
		}
		seen[h] = 0
		names[i] = h
	}
	return names
}

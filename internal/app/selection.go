package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// parseSelection turns a playlist selection expression into sorted,
// de-duplicated 1-based indices. Accepted forms: "all", a single number,
// a range "3-7", or a comma list mixing both ("1,4-6,9"). Indices outside
// [1, total] are rejected.
func parseSelection(expr string, total int) ([]int, error) {
	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" || expr == "all" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i + 1
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := parseIndex(lo, total)
			if err != nil {
				return nil, err
			}
			end, err := parseIndex(hi, total)
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("range %q runs backwards", part)
			}
			for i := start; i <= end; i++ {
				seen[i] = true
			}
			continue
		}

		n, err := parseIndex(part, total)
		if err != nil {
			return nil, err
		}
		seen[n] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("empty selection %q", expr)
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

func parseIndex(s string, total int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid selection entry %q", s)
	}
	if n < 1 || n > total {
		return 0, fmt.Errorf("selection %d out of range (playlist has %d videos)", n, total)
	}
	return n, nil
}

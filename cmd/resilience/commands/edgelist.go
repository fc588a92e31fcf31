package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// loadEdgeList reads a cleaned CSV edge list. The header must contain
// source, target and tier columns (case-insensitive, spaces ignored);
// country and industry columns are optional and only consulted by the
// non-firm granularities.
func loadEdgeList(path string) ([]supply.EdgeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read edge list header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
		cols[key] = i
	}
	for _, required := range []string{"source", "target", "tier"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("edge list missing %q column", required)
		}
	}

	field := func(row []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []supply.EdgeRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edge list line %d: %w", line, err)
		}

		tier, err := strconv.Atoi(field(row, "tier"))
		if err != nil {
			return nil, fmt.Errorf("edge list line %d: bad tier: %w", line, err)
		}
		if tier < 0 {
			return nil, fmt.Errorf("edge list line %d: negative tier %d", line, tier)
		}

		records = append(records, supply.EdgeRecord{
			Source:         field(row, "source"),
			Target:         field(row, "target"),
			Tier:           tier,
			SourceCountry:  field(row, "source_country"),
			TargetCountry:  field(row, "target_country"),
			SourceIndustry: field(row, "source_industry"),
			TargetIndustry: field(row, "target_industry"),
		})
	}
	return records, nil
}

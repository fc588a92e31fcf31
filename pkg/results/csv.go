package results

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the sweep table with a deterministic column order: the
// remaining-fraction column, one column per metric label, the failure scale,
// the attack type, and the tier count when present.
func (t *SweepTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{t.RemainingLabel}, t.MetricLabels...)
	header = append(header, "Failure scale", "Attack type")
	if t.HasTierCounts {
		header = append(header, "Tier count")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := make([]string, 0, len(header))
		record = append(record, formatFloat(row.Remaining))
		for _, label := range t.MetricLabels {
			record = append(record, formatFloat(row.Values[label]))
		}
		record = append(record, row.Scale, row.AttackType)
		if t.HasTierCounts {
			record = append(record, strconv.Itoa(row.TierCount))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes one row per tier count with its distance to the full-depth
// baseline.
func (t *DistanceTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Tier count", "Distance"}); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write([]string{strconv.Itoa(row.TierCount), formatFloat(row.Distance)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the threshold matrix: node ID followed by one column per
// repeat.
func (t *ThresholdTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, t.Repeats+1)
	header = append(header, "Node")
	for i := 0; i < t.Repeats; i++ {
		header = append(header, strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, id := range t.NodeIDs {
		record := make([]string, 0, t.Repeats+1)
		record = append(record, id)
		for _, v := range t.Cells[id] {
			record = append(record, strconv.Itoa(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"harvestsim/pkg/harvestsim"
)

func writeSeries(w io.Writer, result harvestsim.ProjectResult, format string) error {
	switch format {
	case "table":
		return writeSeriesTable(w, result)
	case "csv":
		return writeSeriesCSV(w, result)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSeriesTable(w io.Writer, result harvestsim.ProjectResult) error {
	fmt.Fprintf(w, "mode=%s harvest=%v horizon=%d\n", result.Mode, result.Harvest, result.Horizon)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tJUVENILE\tSUB-ADULT\tADULT\tTOTAL")
	for _, pt := range result.Series {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			pt.Year, pt.Stages.Juveniles, pt.Stages.SubAdults, pt.Stages.Adults, pt.Stages.Total())
	}
	return tw.Flush()
}

func writeSeriesCSV(w io.Writer, result harvestsim.ProjectResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "juveniles", "sub_adults", "adults", "total"}); err != nil {
		return err
	}
	for _, pt := range result.Series {
		record := []string{
			strconv.Itoa(pt.Year),
			formatCount(pt.Stages.Juveniles),
			formatCount(pt.Stages.SubAdults),
			formatCount(pt.Stages.Adults),
			formatCount(pt.Stages.Total()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

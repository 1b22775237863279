package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/MikeBiancalana/datefield/internal/record"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, tsv, csv)", s)
	}
}

// writeRecords prints records in the requested format. Dates use the
// bundle's display format except in CSV and JSON, which use the edit format
// and RFC 3339 respectively.
func writeRecords(w io.Writer, format OutputFormat, records []record.Record, bundle *localize.Bundle) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(records)
	case FormatTSV:
		return formatRecordsTSV(w, records, bundle)
	case FormatCSV:
		return formatRecordsCSV(w, records, bundle)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No dates found")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s  %-24s %s\n", r.ID, r.Label, displayOrNone(bundle, r))
	}
	return nil
}

func formatRecordsTSV(w io.Writer, records []record.Record, bundle *localize.Bundle) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "ID\tLABEL\tDATE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Label, displayOrNone(bundle, r))
	}
	return tw.Flush()
}

func formatRecordsCSV(w io.Writer, records []record.Record, bundle *localize.Bundle) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "LABEL", "DATE"})
	for _, r := range records {
		row := []string{r.ID, r.Label, bundle.Format(r.Value, true)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeHistory prints commit entries, newest first.
func writeHistory(w io.Writer, format OutputFormat, entries []record.CommitEntry, bundle *localize.Bundle) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No commits yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "WHEN\tTYPED\tRESULT")
	for _, e := range entries {
		result := bundle.Format(e.Value, false)
		switch {
		case e.Rejected:
			result = "rejected"
		case e.Value == nil:
			result = "cleared"
		}
		fmt.Fprintf(tw, "%s\t%q\t%s\n", e.CommittedAt.Format("2006-01-02 15:04:05"), e.Raw, result)
	}
	return tw.Flush()
}

func displayOrNone(bundle *localize.Bundle, r record.Record) string {
	if r.Value == nil {
		return "-"
	}
	return bundle.Format(r.Value, false)
}

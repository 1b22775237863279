package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/spf13/cobra"
)

var formatEditingFlag bool

// formatCmd prints the canonical text of a date
var formatCmd = &cobra.Command{
	Use:   "format [date]",
	Short: "Print a date in the configured formats",
	Long: `Print the canonical text of a date, as a date field shows it.

Examples:
  datefield format 2025-03-14
  datefield format tm --editing`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := loadBundle()
		if err != nil {
			return err
		}

		c := commitText(bundle, nil, strings.Join(args, " "))
		if c.Rejected {
			return rejectedError(c)
		}

		fmt.Fprintln(cmd.OutOrStdout(), bundle.Format(c.Date, formatEditingFlag))
		return nil
	},
}

// parseCmd runs text through a date field and reports the commit
var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Show what a date field makes of typed text",
	Long: `Type text into a date field, leave the field and report the outcome:
the stored date, a cleared field, or a rejected entry.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := loadBundle()
		if err != nil {
			return err
		}

		raw := strings.Join(args, " ")
		c := commitText(bundle, nil, raw)
		out := cmd.OutOrStdout()

		switch {
		case c.Rejected:
			fmt.Fprintf(out, "rejected: %q\n", c.Raw)
			return rejectedError(c)
		case c.Cleared():
			fmt.Fprintln(out, "cleared")
		default:
			fmt.Fprintf(out, "date:    %s\n", c.Date.Format(time.RFC3339))
			fmt.Fprintf(out, "edit:    %s\n", bundle.Format(c.Date, true))
			fmt.Fprintf(out, "display: %s\n", bundle.Format(c.Date, false))
		}
		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVar(&formatEditingFlag, "editing", false, "Use the edit format instead of the display format")
}

// commitText types text into a field showing value, leaves the field and
// returns the commit. Typing always makes the field dirty, so leaving it
// always commits.
func commitText(bundle *localize.Bundle, value *time.Time, text string) dateinput.Commit {
	props := bundle.Props(value)
	props.Editing = true

	field := dateinput.New(props)
	field.HandleChange(text)
	c, _ := field.HandleBlur()
	return c
}

func rejectedError(c dateinput.Commit) error {
	if c.Err != nil {
		return fmt.Errorf("%q is not a date: %w", c.Raw, c.Err)
	}
	return fmt.Errorf("%q is not a date", c.Raw)
}

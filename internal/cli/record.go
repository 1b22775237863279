package cli

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	listFormatFlag    string
	historyFormatFlag string
)

// addCmd creates a new record
var addCmd = &cobra.Command{
	Use:   "add [label] [date]",
	Short: "Add a named date",
	Long: `Add a named date. The last argument is the date when more than one is
given. Without arguments an interactive form is shown.

Examples:
  datefield add "Passport expiry" 2031-05-02
  datefield add Dentist +2w
  datefield add`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := loadBundle()
		if err != nil {
			return err
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		var label, text string
		switch len(args) {
		case 0:
			label, text, err = runInteractiveAddForm(bundle)
			if err != nil {
				return err
			}
		case 1:
			label = args[0]
		default:
			label = strings.Join(args[:len(args)-1], " ")
			text = args[len(args)-1]
		}

		c := commitText(bundle, nil, text)
		if c.Rejected {
			return rejectedError(c)
		}

		rec, err := svc.Create(label, c.Date)
		if err != nil {
			return fmt.Errorf("failed to add date: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Added %s\n", rec.ID)
		fmt.Fprintf(out, "  Label: %s\n", rec.Label)
		fmt.Fprintf(out, "  Date: %s\n", displayOrNone(bundle, *rec))
		return nil
	},
}

// runInteractiveAddForm asks for a label and a date
func runInteractiveAddForm(bundle *localize.Bundle) (string, string, error) {
	var label, text string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Value(&label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (optional)").
				Placeholder(bundle.Hint()).
				Description("Leave empty for no date").
				Value(&text).
				Validate(func(s string) error {
					if c := commitText(bundle, nil, s); c.Rejected {
						return rejectedError(c)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("form cancelled: %w", err)
	}
	return label, text, nil
}

// listCmd lists records
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List named dates",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(listFormatFlag)
		if err != nil {
			return err
		}

		bundle, err := loadBundle()
		if err != nil {
			return err
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		records, err := svc.List()
		if err != nil {
			return fmt.Errorf("failed to list dates: %w", err)
		}

		return writeRecords(cmd.OutOrStdout(), format, records, bundle)
	},
}

// setCmd types text into a record's date field
var setCmd = &cobra.Command{
	Use:   "set [id] [date]",
	Short: "Change a record's date",
	Long: `Type a new date for a record. Empty text clears the date. Text that is
not a date is recorded in the history and leaves the date unchanged.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyText(cmd, args[0], strings.Join(args[1:], " "))
	},
}

// clearCmd clears a record's date
var clearCmd = &cobra.Command{
	Use:   "clear [id]",
	Short: "Clear a record's date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyText(cmd, args[0], "")
	},
}

func applyText(cmd *cobra.Command, id, text string) error {
	bundle, err := loadBundle()
	if err != nil {
		return err
	}

	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	rec, err := svc.Get(id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	c := commitText(bundle, rec.Value, text)
	rec, err = svc.ApplyCommit(id, c)
	if err != nil {
		return fmt.Errorf("failed to save date: %w", err)
	}

	if c.Rejected {
		return fmt.Errorf("%w; %s unchanged", rejectedError(c), rec.Label)
	}

	out := cmd.OutOrStdout()
	if rec.Value == nil {
		fmt.Fprintf(out, "✓ Cleared %s\n", rec.Label)
	} else {
		fmt.Fprintf(out, "✓ %s: %s\n", rec.Label, bundle.Format(rec.Value, false))
	}
	return nil
}

// historyCmd shows the commits made for a record
var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show everything typed for a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(historyFormatFlag)
		if err != nil {
			return err
		}

		bundle, err := loadBundle()
		if err != nil {
			return err
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		entries, err := svc.History(args[0])
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		return writeHistory(cmd.OutOrStdout(), format, entries, bundle)
	},
}

// rmCmd deletes a record
var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := svc.Delete(args[0]); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormatFlag, "format", "text", "Output format (text, json, tsv, csv)")
	historyCmd.Flags().StringVar(&historyFormatFlag, "format", "text", "Output format (text, json)")
}

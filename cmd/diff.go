package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ddlview/internal/diff"
	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/source"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two schemas",
	Long: `
Parse two schemas (files or folders of .sql files) and report added, removed
and changed tables and fields. Use --lines for a line diff of the normalized SQL.

Examples:
  ddlview diff db/schema.old.sql db/schema
  ddlview diff old.sql new.sql --lines
  ddlview diff old.sql new.sql --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldDoc, err := parsePath(args[0])
		if err != nil {
			return err
		}
		newDoc, err := parsePath(args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		result := diff.Compare(oldDoc, newDoc)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		if lines, _ := cmd.Flags().GetBool("lines"); lines {
			printLineDiff(out, diff.SQL(oldDoc, newDoc))
			return nil
		}

		printResult(out, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("lines", false, "Show a line diff of the normalized SQL")
	diffCmd.Flags().Bool("json", false, "Print the structural diff as JSON")
}

func parsePath(path string) (parser.Document, error) {
	sql, err := source.ReadPath(path)
	if err != nil {
		return parser.Document{}, err
	}
	return parser.Parse(sql), nil
}

func printResult(out io.Writer, result diff.Result) {
	if result.Empty() {
		fmt.Fprintln(out, "✅ Schemas are identical")
		return
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, table := range result.AddedTables {
		fmt.Fprintln(out, green.Sprintf("+ table %s (%d fields)", table.Name, len(table.Fields)))
	}
	for _, table := range result.RemovedTables {
		fmt.Fprintln(out, red.Sprintf("- table %s", table.Name))
	}
	for _, table := range result.ModifiedTables {
		fmt.Fprintln(out, yellow.Sprintf("~ table %s", table.Name))
		for _, field := range table.AddedFields {
			fmt.Fprintln(out, green.Sprintf("    + %s %s", field.Name, describeField(field)))
		}
		for _, field := range table.RemovedFields {
			fmt.Fprintln(out, red.Sprintf("    - %s %s", field.Name, describeField(field)))
		}
		for _, change := range table.ChangedFields {
			fmt.Fprintln(out, yellow.Sprintf("    ~ %s %s -> %s", change.Name, describeField(change.Old), describeField(change.New)))
		}
	}

	fmt.Fprintf(out, "\n📊 %d added, %d removed, %d modified\n",
		len(result.AddedTables), len(result.RemovedTables), len(result.ModifiedTables))
}

func describeField(field parser.Field) string {
	switch {
	case field.PrimaryKey:
		return field.Type + " PRIMARY KEY"
	case field.Required:
		return field.Type + " NOT NULL"
	default:
		return field.Type
	}
}

func printLineDiff(out io.Writer, lines []diff.Line) {
	if !diff.Changed(lines) {
		fmt.Fprintln(out, "✅ Schemas are identical")
		return
	}

	for _, line := range lines {
		switch line.Op {
		case diff.Insert:
			fmt.Fprintln(out, color.GreenString(line.String()))
		case diff.Delete:
			fmt.Fprintln(out, color.RedString(line.String()))
		default:
			fmt.Fprintln(out, line.String())
		}
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Parse CREATE TABLE statements and print the schema",
	Long: `
Parse a .sql file, a folder of .sql files, or stdin and print the tables and
fields that were recognized. Without a path the configured schema_path is used.

Examples:
  ddlview parse
  ddlview parse db/schema/users.sql
  pg_dump --schema-only mydb | ddlview parse -
  ddlview parse --json
  ddlview parse --diagnostics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sql, err := readSchema(cmd, cfg, args)
		if err != nil {
			return err
		}

		doc, diags := parser.ParseWithDiagnostics(sql)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		}

		printDocument(out, doc)

		if showDiags, _ := cmd.Flags().GetBool("diagnostics"); showDiags {
			printDiagnostics(out, diags)
		} else if len(diags) > 0 {
			fmt.Fprintf(out, "\nℹ️  %d clause(s) skipped, run with --diagnostics for details\n", len(diags))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("json", false, "Print the schema as JSON")
	parseCmd.Flags().BoolP("diagnostics", "d", false, "List skipped statements and clauses")
}

// readSchema returns the SQL named by args: "-" reads stdin, a path reads a
// file or folder, and no argument falls back to the configured schema_path.
func readSchema(cmd *cobra.Command, cfg *config.Config, args []string) (string, error) {
	path := cfg.SchemaPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "-" {
		return source.ReadReader(cmd.InOrStdin())
	}
	return source.ReadPath(path)
}

func printDocument(out io.Writer, doc parser.Document) {
	if doc.Empty() {
		fmt.Fprintln(out, color.YellowString("⚠️  No tables found"))
		return
	}

	tableColor := color.New(color.FgCyan, color.Bold)
	typeColor := color.New(color.FgYellow)
	keyColor := color.New(color.FgMagenta)
	dimColor := color.New(color.FgHiBlack)

	for i, table := range doc.Tables {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "📋 %s %s\n", tableColor.Sprint(table.Name), dimColor.Sprintf("(%d fields)", len(table.Fields)))

		width := 0
		for _, field := range table.Fields {
			width = max(width, len(field.Name))
		}

		for _, field := range table.Fields {
			var flags []string
			if field.PrimaryKey {
				flags = append(flags, keyColor.Sprint("🔑 primary key"))
			} else if field.Required {
				flags = append(flags, "required")
			}
			if field.Description != "" {
				flags = append(flags, dimColor.Sprint("-- "+field.Description))
			}

			fmt.Fprintf(out, "   %-*s %s", width, field.Name, typeColor.Sprint(field.Type))
			if len(flags) > 0 {
				fmt.Fprintf(out, "  %s", strings.Join(flags, "  "))
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(out, "\n✅ %d table(s), %d field(s)\n", len(doc.Tables), doc.FieldCount())
}

func printDiagnostics(out io.Writer, diags []parser.Diagnostic) {
	if len(diags) == 0 {
		fmt.Fprintln(out, "\n✅ No diagnostics")
		return
	}

	fmt.Fprintf(out, "\n🔍 %d diagnostic(s):\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(out, "   %s\n", color.YellowString(d.String()))
	}
}

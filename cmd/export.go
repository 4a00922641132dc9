package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/export"
	"github.com/Rana718/ddlview/internal/parser"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the parsed schema",
	Long: `
Parse the schema and write it to export_path in one of the supported formats.
Supported formats: json (default), yaml, sql, csv, sqlite

Examples:
  ddlview export
  ddlview export --format yaml
  ddlview export db/schema/users.sql --format sqlite`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(format)
		if !slices.Contains(export.Formats, format) {
			return fmt.Errorf("unsupported format %q. Supported formats: %s", format, strings.Join(export.Formats, ", "))
		}

		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}

		sql, err := readSchema(cmd, cfg, args)
		if err != nil {
			return err
		}

		doc := parser.Parse(sql)

		exportPath, err := export.Write(doc, cfg.ExportPath, format)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Export completed: %s\n", exportPath)
		fmt.Fprintf(cmd.OutOrStdout(), "   %d table(s), %d field(s)\n", len(doc.Tables), doc.FieldCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "F", "json", "Export format: "+strings.Join(export.Formats, ", "))
}

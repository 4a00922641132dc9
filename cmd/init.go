package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/source"
	"github.com/Rana718/ddlview/template"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ddlview project",
	Long: `
Create ddlview.config.json, the schema and export directories, a sample
schema and a .env file with DATABASE_URL.

Existing .sql files are left untouched. Use --force to overwrite an
existing ddlview.config.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(cmd, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

func initializeProject(cmd *cobra.Command, force bool) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(config.FileName); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	cfg := config.Default()
	tmpl := template.NewProjectTemplate(cfg)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := cfg.Save(config.FileName); err != nil {
		return err
	}

	schemaExists := false
	if files, err := source.SQLFiles(cfg.SchemaPath); err == nil && len(files) > 0 {
		schemaExists = true
	}
	if !schemaExists {
		schemaFile := filepath.Join(cfg.SchemaPath, "schema.sql")
		if err := os.WriteFile(schemaFile, []byte(tmpl.GetSchema()), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", schemaFile, err)
		}
	}

	if err := handleEnvFile(cfg.Database.URLEnv, tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Fprintln(out, "✅ Successfully initialized ddlview project")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📁 Project structure created:")
	for _, dir := range directories {
		fmt.Fprintf(out, "   %s/\n", dir)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📝 Configuration file created:")
	fmt.Fprintf(out, "   %s\n", config.FileName)

	if schemaExists {
		fmt.Fprintf(out, "ℹ️  Skipped sample schema (%s already has .sql files)\n", cfg.SchemaPath)
	}

	if os.Getenv(cfg.Database.URLEnv) != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "ℹ️  Using existing %s from environment\n", cfg.Database.URLEnv)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "🚀 Next steps:")
	fmt.Fprintln(out, "   ddlview parse            # Inspect the schema")
	fmt.Fprintln(out, "   ddlview pull             # Pull tables from DATABASE_URL")
	fmt.Fprintln(out, "   ddlview serve            # Start the HTTP API")

	return nil
}

// handleEnvFile writes .env, or appends the template to an existing one that
// does not define key yet.
func handleEnvFile(key, defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, key) {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by ddlview\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ██████╗ ██████╗ ██╗    ██╗   ██╗██╗███████╗██╗    ██╗ ║",
		"║   ██╔══██╗██╔══██╗██║    ██║   ██║██║██╔════╝██║    ██║ ║",
		"║   ██║  ██║██║  ██║██║    ██║   ██║██║█████╗  ██║ █╗ ██║ ║",
		"║   ██║  ██║██║  ██║██║    ╚██╗ ██╔╝██║██╔══╝  ██║███╗██║ ║",
		"║   ██████╔╝██████╔╝███████╗╚████╔╝ ██║███████╗╚███╔███╔╝ ║",
		"║   ╚═════╝ ╚═════╝ ╚══════╝ ╚═══╝  ╚═╝╚══════╝ ╚══╝╚══╝  ║",
		"║                                                      ║",
		"║        🗂  PostgreSQL schemas, parsed and served        ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                   ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "ddlview",
	Short: "Parse PostgreSQL CREATE TABLE statements into a browsable schema",
	Long: `
ddlview reads PostgreSQL CREATE TABLE statements and turns them into a
structured schema: tables, fields, normalized types, required flags,
primary keys and column comments.

Sources:
- a .sql file or a folder of .sql files
- stdin
- a live PostgreSQL database (ddlview pull)

Outputs:
- colored summaries and JSON (ddlview parse)
- json, yaml, sql, csv and sqlite exports (ddlview export)
- schema diffs (ddlview diff)
- an HTTP API (ddlview serve)`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ddlview version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ddlview.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("ddlview.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}

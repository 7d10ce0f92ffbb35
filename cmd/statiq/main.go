package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "statiq",
	Short:   "Static file middleware and server",
	Long: `Statiq serves static files resolved across an ordered list of
search roots, with extension and directory exclusion rules and optional
database-backed per-host docroot mappings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "docroot database type: sqlite, postgres (default: disabled, env: STATIQ_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "docroot database connection string (env: STATIQ_DATABASE_DSN)")

	_ = viper.BindPFlag("database.type", rootCmd.PersistentFlags().Lookup("db-type"))
	_ = viper.BindPFlag("database.dsn", rootCmd.PersistentFlags().Lookup("db-dsn"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Manage database docroot mappings",
	Long: `Manage the host-to-docroot mappings served by the configured
database backend. Requires database.type and database.dsn to be set.`,
}

var rootsAddCmd = &cobra.Command{
	Use:   "add <host> <root>",
	Short: "Map a docroot to a host",
	Args:  cobra.ExactArgs(2),
	RunE:  runRootsAdd,
}

var rootsListCmd = &cobra.Command{
	Use:   "list [host]",
	Short: "List docroot mappings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRootsList,
}

var rootsRemoveCmd = &cobra.Command{
	Use:     "remove <host> <root>",
	Aliases: []string{"rm"},
	Short:   "Remove a docroot mapping",
	Args:    cobra.ExactArgs(2),
	RunE:    runRootsRemove,
}

var rootsPosition int

func init() {
	rootsAddCmd.Flags().IntVar(&rootsPosition, "position", 0, "search order within the host (lower first)")

	rootsCmd.AddCommand(rootsAddCmd)
	rootsCmd.AddCommand(rootsListCmd)
	rootsCmd.AddCommand(rootsRemoveCmd)
	rootCmd.AddCommand(rootsCmd)
}

func connectStore(cmd *cobra.Command) (database.RootStore, func(), error) {
	cfg := database.Config{
		Type:  viper.GetString("database.type"),
		DSN:   viper.GetString("database.dsn"),
		Table: viper.GetString("database.table"),
	}

	if !cfg.Enabled() {
		return nil, nil, fmt.Errorf("no docroot database configured (set database.type and database.dsn)")
	}

	return database.Connect(cmd.Context(), cfg)
}

func runRootsAdd(cmd *cobra.Command, args []string) error {
	store, closeDB, err := connectStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	d := statiq.Docroot{Host: args[0], Position: rootsPosition, Root: args[1]}
	if err := store.Add(cmd.Context(), d); err != nil {
		return fmt.Errorf("add mapping: %w", err)
	}

	fmt.Printf("mapped %s -> %s (position %d)\n", d.Host, d.Root, d.Position)
	return nil
}

func runRootsList(cmd *cobra.Command, args []string) error {
	store, closeDB, err := connectStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	host := ""
	if len(args) == 1 {
		host = args[0]
	}

	mappings, err := store.List(cmd.Context(), host)
	if err != nil {
		return fmt.Errorf("list mappings: %w", err)
	}

	if len(mappings) == 0 {
		fmt.Println("no mappings")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HOST\tPOSITION\tROOT")
	for _, d := range mappings {
		fmt.Fprintf(w, "%s\t%d\t%s\n", d.Host, d.Position, d.Root)
	}
	return w.Flush()
}

func runRootsRemove(cmd *cobra.Command, args []string) error {
	store, closeDB, err := connectStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Remove(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("remove mapping: %w", err)
	}

	fmt.Printf("removed %s -> %s\n", args[0], args[1])
	return nil
}

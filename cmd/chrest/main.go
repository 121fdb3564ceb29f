package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/config"
	"github.com/Smileaty/chrest/internal/logging"
	"github.com/Smileaty/chrest/internal/model"
	"github.com/Smileaty/chrest/internal/store"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chrest",
		Short: "chrest - discrimination-network learning engine",
		Long: `chrest grows a discrimination network from streams of sequential
patterns, modeling how a cognitive agent learns to recognise and name
compound stimuli.

Patterns are written in angle-bracket notation: items separated by
spaces, with a trailing $ marking a complete pattern, e.g. 'A B C $'.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Working root directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLearnCmd(),
		newRecogniseCmd(),
		newStatsCmd(),
		newGraphCmd(),
		newExportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("chrest version %s\n", version)
			}
		},
	}
}

// chrestDir returns the network data directory for the given working root,
// honoring the configured store path.
func chrestDir(cfg *config.ChrestConfig, root string) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return filepath.Join(root, ".chrest")
}

// openModel loads the configuration and the persisted network, returning a
// ready model and its store. The caller owns the store and must close it.
func openModel(cmd *cobra.Command) (*model.Model, store.Store, *config.ChrestConfig, error) {
	root, _ := cmd.Flags().GetString("root")

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	dir := chrestDir(cfg, root)
	st, err := store.NewSQLiteStore(dir)
	if err != nil {
		return nil, nil, nil, err
	}

	net, err := st.Load(cmd.Context())
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("loading network: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	m := model.NewFromNetwork(cfg, net, logger)
	m.SetTrace(logging.NewTraceLogger(dir, cfg.Logging.Level))

	return m, st, cfg, nil
}

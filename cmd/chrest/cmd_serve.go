package main

import (
	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/config"
	"github.com/Smileaty/chrest/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Run chrest as an MCP (Model Context Protocol) server over stdio,
exposing chrest_learn, chrest_recognise, and chrest_stats tools backed
by the persistent network.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "chrest",
				Version: version,
				Dir:     chrestDir(cfg, root),
				Chrest:  cfg,
			})
			if err != nil {
				return err
			}

			return server.Run(cmd.Context())
		},
	}
}

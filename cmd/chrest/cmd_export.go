package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the legacy tag-delimited text description of the network",
		Long: `Write every node of the network in the legacy pre-order, tag-delimited
text format. Note that the corresponding reader is incomplete: this
format is write-only; the sqlite store is the faithful persistence path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			m, st, _, err := openModel(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if out == "" {
				return store.Export(os.Stdout, m.Network())
			}
			if err := store.ExportFile(out, m.Network()); err != nil {
				return err
			}
			fmt.Printf("exported %d nodes to %s\n", m.Network().Count(), out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output file (default: stdout)")

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render a modality's network as DOT (Graphviz) or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			modalityFlag, _ := cmd.Flags().GetString("modality")
			format, _ := cmd.Flags().GetString("format")

			modality, err := parseModalityFlag(modalityFlag)
			if err != nil {
				return err
			}

			m, st, _, err := openModel(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			switch visualization.Format(format) {
			case visualization.FormatDOT:
				out, err := visualization.RenderDOT(m.Network(), modality)
				if err != nil {
					return err
				}
				fmt.Print(out)
				return nil
			case visualization.FormatJSON:
				out, err := visualization.RenderJSON(m.Network(), modality)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (valid: dot, json)", format)
			}
		},
	}

	cmd.Flags().String("modality", "visual", "Modality to render: visual, verbal, or action")
	cmd.Flags().String("format", "dot", "Output format: dot or json")

	return cmd
}

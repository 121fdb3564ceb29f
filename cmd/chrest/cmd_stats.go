package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/pattern"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report network size, average depth, and simulated clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			m, st, _, err := openModel(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			type modalityStats struct {
				Modality     string  `json:"modality"`
				Size         int     `json:"size"`
				AverageDepth float64 `json:"average_depth"`
			}
			var networks []modalityStats
			for _, modality := range pattern.Modalities {
				networks = append(networks, modalityStats{
					Modality:     string(modality),
					Size:         m.Size(modality),
					AverageDepth: m.AverageDepth(modality),
				})
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"networks":      networks,
					"total":         m.Network().Count(),
					"clock_seconds": m.Clock().Seconds(),
				})
			}
			for _, n := range networks {
				fmt.Printf("%-8s %5d nodes, average depth %.2f\n", n.Modality, n.Size, n.AverageDepth)
			}
			fmt.Printf("total    %5d nodes, clock %s\n", m.Network().Count(), m.Clock())
			return nil
		},
	}
}

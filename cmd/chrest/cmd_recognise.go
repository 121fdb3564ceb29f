package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/pattern"
)

func newRecogniseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognise <pattern>",
		Short: "Retrieve the deepest node matching a pattern, without learning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modalityFlag, _ := cmd.Flags().GetString("modality")
			jsonOut, _ := cmd.Flags().GetBool("json")

			modality, err := parseModalityFlag(modalityFlag)
			if err != nil {
				return err
			}
			p, err := pattern.Parse(modality, args[0])
			if err != nil {
				return err
			}

			m, st, _, err := openModel(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ref := m.Recognise(p)
			nd := m.Network().Node(ref)
			isRoot := ref == m.RootFor(modality)

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"node":     int(ref),
					"contents": nd.Contents().String(),
					"image":    nd.Image().String(),
					"is_root":  isRoot,
				})
			}
			if isRoot {
				fmt.Printf("nothing recognised beyond the %s root (node %d)\n", modality, int(ref))
				return nil
			}
			fmt.Printf("node %d\n  contents: %s\n  image:    %s\n", int(ref), nd.Contents(), nd.Image())
			return nil
		},
	}

	cmd.Flags().String("modality", "visual", "Pattern modality: visual, verbal, or action")

	return cmd
}

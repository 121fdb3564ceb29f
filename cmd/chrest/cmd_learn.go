package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Smileaty/chrest/internal/pattern"
)

func newLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn [pattern]...",
		Short: "Present patterns to the model, growing the network",
		Long: `Present one or more patterns to the model. Each argument is a pattern
in angle-bracket notation; a trailing $ marks the pattern complete:

  chrest learn 'A B C $' 'A B D $'

With --file, patterns are read one per line; blank lines and lines
starting with # are skipped. Each pattern is presented --repeat times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modalityFlag, _ := cmd.Flags().GetString("modality")
			file, _ := cmd.Flags().GetString("file")
			repeat, _ := cmd.Flags().GetInt("repeat")
			jsonOut, _ := cmd.Flags().GetBool("json")

			modality, err := parseModalityFlag(modalityFlag)
			if err != nil {
				return err
			}

			inputs := append([]string{}, args...)
			if file != "" {
				lines, err := readPatternFile(file)
				if err != nil {
					return err
				}
				inputs = append(inputs, lines...)
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no patterns given (pass arguments or --file)")
			}

			patterns := make([]*pattern.Pattern, 0, len(inputs))
			for _, in := range inputs {
				p, err := pattern.Parse(modality, in)
				if err != nil {
					return err
				}
				patterns = append(patterns, p)
			}

			m, st, _, err := openModel(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if repeat < 1 {
				repeat = 1
			}
			for i := 0; i < repeat; i++ {
				for _, p := range patterns {
					if _, err := m.RecogniseAndLearn(p); err != nil {
						return err
					}
				}
			}

			if err := st.Save(cmd.Context(), m.Network()); err != nil {
				return fmt.Errorf("saving network: %w", err)
			}

			size := m.Size(modality)
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"patterns":      len(patterns),
					"presentations": len(patterns) * repeat,
					"modality":      string(modality),
					"size":          size,
					"clock_seconds": m.Clock().Seconds(),
				})
			}
			fmt.Printf("learned %d pattern(s) over %d presentation(s)\n", len(patterns), len(patterns)*repeat)
			fmt.Printf("%s network: %d nodes, clock %s\n", modality, size, m.Clock())
			return nil
		},
	}

	cmd.Flags().String("modality", "visual", "Pattern modality: visual, verbal, or action")
	cmd.Flags().String("file", "", "Read patterns from a file, one per line")
	cmd.Flags().Int("repeat", 1, "Present each pattern this many times")

	return cmd
}

// parseModalityFlag maps a flag value to a modality.
func parseModalityFlag(s string) (pattern.Modality, error) {
	switch s {
	case "", string(pattern.Visual):
		return pattern.Visual, nil
	case string(pattern.Verbal):
		return pattern.Verbal, nil
	case string(pattern.Action):
		return pattern.Action, nil
	default:
		return "", fmt.Errorf("unknown modality %q (valid: visual, verbal, action)", s)
	}
}

// readPatternFile reads patterns from a file, one per line. Blank lines and
// # comments are skipped.
func readPatternFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pattern file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	return lines, nil
}

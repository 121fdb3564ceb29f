package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

// registerTools registers all chrest MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "chrest_learn",
		Description: "Present a pattern to the model, growing the discrimination network",
	}, s.handleLearn)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "chrest_recognise",
		Description: "Retrieve the deepest node matching a pattern, without learning",
	}, s.handleRecognise)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "chrest_stats",
		Description: "Report network size, average depth, and simulated clock",
	}, s.handleStats)
}

// parseModality maps a tool argument to a modality, defaulting to visual.
func parseModality(s string) (pattern.Modality, error) {
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

func (s *Server) handleLearn(ctx context.Context, req *sdk.CallToolRequest, args ChrestLearnInput) (*sdk.CallToolResult, ChrestLearnOutput, error) {
	if args.Pattern == "" {
		return nil, ChrestLearnOutput{}, fmt.Errorf("'pattern' parameter is required")
	}
	modality, err := parseModality(args.Modality)
	if err != nil {
		return nil, ChrestLearnOutput{}, err
	}
	p, err := pattern.Parse(modality, args.Pattern)
	if err != nil {
		return nil, ChrestLearnOutput{}, err
	}

	repeat := args.Repeat
	if repeat < 1 {
		repeat = 1
	}

	node := network.NilRef
	for i := 0; i < repeat; i++ {
		node, err = s.model.RecogniseAndLearn(p)
		if err != nil {
			return nil, ChrestLearnOutput{}, err
		}
	}

	if err := s.store.Save(ctx, s.model.Network()); err != nil {
		return nil, ChrestLearnOutput{}, fmt.Errorf("saving network: %w", err)
	}

	size := s.model.Size(modality)
	return nil, ChrestLearnOutput{
		Node:    int(node),
		Size:    size,
		ClockS:  s.model.Clock().Seconds(),
		Message: fmt.Sprintf("learned %s over %d presentation(s); %s network now has %d nodes", p, repeat, modality, size),
	}, nil
}

func (s *Server) handleRecognise(ctx context.Context, req *sdk.CallToolRequest, args ChrestRecogniseInput) (*sdk.CallToolResult, ChrestRecogniseOutput, error) {
	if args.Pattern == "" {
		return nil, ChrestRecogniseOutput{}, fmt.Errorf("'pattern' parameter is required")
	}
	modality, err := parseModality(args.Modality)
	if err != nil {
		return nil, ChrestRecogniseOutput{}, err
	}
	p, err := pattern.Parse(modality, args.Pattern)
	if err != nil {
		return nil, ChrestRecogniseOutput{}, err
	}

	ref := s.model.Recognise(p)
	nd := s.model.Network().Node(ref)
	return nil, ChrestRecogniseOutput{
		Node:     int(ref),
		Contents: nd.Contents().String(),
		Image:    nd.Image().String(),
		IsRoot:   ref == s.model.RootFor(modality),
	}, nil
}

func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args ChrestStatsInput) (*sdk.CallToolResult, ChrestStatsOutput, error) {
	modalities := pattern.Modalities
	if args.Modality != "" {
		m, err := parseModality(args.Modality)
		if err != nil {
			return nil, ChrestStatsOutput{}, err
		}
		modalities = []pattern.Modality{m}
	}

	out := ChrestStatsOutput{
		Total:  s.model.Network().Count(),
		ClockS: s.model.Clock().Seconds(),
	}
	for _, m := range modalities {
		out.Networks = append(out.Networks, ModalityStats{
			Modality:     string(m),
			Size:         s.model.Size(m),
			AverageDepth: s.model.AverageDepth(m),
		})
	}
	return nil, out, nil
}

// Package model implements the orchestrator that owns a discrimination
// network: one root per modality, network-wide retrieval, a simulated
// logical clock, and the timing parameters charged for learning.
package model

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Smileaty/chrest/internal/config"
	"github.com/Smileaty/chrest/internal/logging"
	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

// Model owns a discrimination network and drives its growth. It implements
// network.Environment, so the growth routines can call back into retrieval
// and the clock without depending on this package.
type Model struct {
	net   *network.Network
	clock time.Duration

	discriminationTime  time.Duration
	familiarisationTime time.Duration

	logger *slog.Logger
	trace  *logging.TraceLogger
}

// New creates a model with a fresh network holding one root per modality.
// A nil logger discards operational output.
func New(cfg *config.ChrestConfig, logger *slog.Logger) *Model {
	return NewFromNetwork(cfg, network.New(), logger)
}

// NewFromNetwork creates a model around an existing network, for example
// one loaded from a store. Roots are created for any modality that lacks one.
func NewFromNetwork(cfg *config.ChrestConfig, net *network.Network, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, m := range pattern.Modalities {
		net.AddRoot(m)
	}
	return &Model{
		net:                 net,
		discriminationTime:  cfg.Timing.DiscriminationTime,
		familiarisationTime: cfg.Timing.FamiliarisationTime,
		logger:              logger,
	}
}

// SetTrace attaches a learning-event trace logger. A nil trace is valid.
func (m *Model) SetTrace(tl *logging.TraceLogger) { m.trace = tl }

// Network returns the model's underlying network.
func (m *Model) Network() *network.Network { return m.net }

// Clock returns the simulated time consumed by learning so far.
func (m *Model) Clock() time.Duration { return m.clock }

// AdvanceClock charges simulated time to the model's clock.
func (m *Model) AdvanceClock(d time.Duration) { m.clock += d }

// DiscriminationTime returns the cost charged for growing a branch.
func (m *Model) DiscriminationTime() time.Duration { return m.discriminationTime }

// FamiliarisationTime returns the cost charged for extending an image.
func (m *Model) FamiliarisationTime() time.Duration { return m.familiarisationTime }

// RootFor returns the root handle for a modality.
func (m *Model) RootFor(modality pattern.Modality) network.Ref {
	return m.net.Root(modality)
}

// Recognise retrieves the deepest node matching the pattern within its
// modality. Starting at the modality root, it repeatedly descends the first
// link whose test matches what remains of the pattern, consuming the test
// from the working pattern at each step. It always returns at least the root.
func (m *Model) Recognise(p *pattern.Pattern) network.Ref {
	current := m.net.Root(p.Modality())
	remaining := p

	for {
		descended := false
		for _, link := range m.net.Node(current).Children() {
			if link.Test.Matches(remaining) {
				current = link.Child
				remaining = remaining.Remove(link.Test)
				descended = true
				break
			}
		}
		if !descended {
			m.logger.Log(context.Background(), logging.LevelTrace, "recognise",
				"pattern", p.String(), "node", int(current))
			return current
		}
	}
}

// RecogniseAndLearn presents a pattern to the model once: the pattern is
// recognised, then the matched node is grown. A node whose image conflicts
// with the pattern (or the bare root) is discriminated; a node whose image
// matches but falls short is familiarised; a fully learned pattern changes
// nothing.
func (m *Model) RecogniseAndLearn(p *pattern.Pattern) (network.Ref, error) {
	node := m.Recognise(p)
	image := m.net.Node(node).Image()

	var (
		result network.Ref
		op     string
		err    error
	)
	switch {
	case node == m.net.Root(p.Modality()):
		op = "discriminate"
		result, err = m.net.Discriminate(m, node, p)
	case image.Equals(p):
		op = "none"
		result = node
	case image.Matches(p):
		op = "familiarise"
		result, err = m.net.Familiarise(m, node, p)
	default:
		op = "discriminate"
		result, err = m.net.Discriminate(m, node, p)
	}
	if err != nil {
		m.logger.Error("learning failed", "op", op, "pattern", p.String(), "error", err)
		return network.NilRef, err
	}

	m.logger.Debug("learned", "op", op, "pattern", p.String(),
		"node", int(result), "clock", m.clock.String())
	m.trace.Log(map[string]any{
		"op":      op,
		"pattern": p.String(),
		"matched": int(node),
		"result":  int(result),
		"clock":   m.clock.Seconds(),
	})
	return result, nil
}

// Discriminate grows a new branch below the given node for the pattern.
func (m *Model) Discriminate(ref network.Ref, p *pattern.Pattern) (network.Ref, error) {
	return m.net.Discriminate(m, ref, p)
}

// Familiarise extends the given node's image with the pattern.
func (m *Model) Familiarise(ref network.Ref, p *pattern.Pattern) (network.Ref, error) {
	return m.net.Familiarise(m, ref, p)
}

// LearnPrimitive learns a single-item finished pattern as a child of the
// given node. The precondition is the network's: violating it panics.
func (m *Model) LearnPrimitive(ref network.Ref, p *pattern.Pattern) network.Ref {
	return m.net.LearnPrimitive(m, ref, p)
}

// Size returns the total node count of the modality's subnetwork.
func (m *Model) Size(modality pattern.Modality) int {
	return m.net.Size(m.net.Root(modality))
}

// AverageDepth returns the mean leaf depth of the modality's subnetwork.
func (m *Model) AverageDepth(modality pattern.Modality) float64 {
	return m.net.AverageDepth(m.net.Root(modality))
}

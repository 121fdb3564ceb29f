// Package store persists discrimination networks. The sqlite store is the
// faithful persistence path, snapshotting the whole node arena; the text
// export mirrors the legacy tag-delimited format, whose reader is
// deliberately incomplete.
package store

import (
	"context"

	"github.com/Smileaty/chrest/internal/network"
)

// Store saves and loads whole networks.
type Store interface {
	// Save snapshots the network, replacing any previous snapshot.
	Save(ctx context.Context, net *network.Network) error

	// Load reconstructs the most recently saved network. An empty store
	// yields an empty network.
	Load(ctx context.Context) (*network.Network, error)

	Close() error
}

package store

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

// Export writes the legacy tag-delimited text description of every
// subnetwork, one modality root at a time in stable order.
func Export(w io.Writer, net *network.Network) error {
	roots := net.Roots()
	modalities := make([]string, 0, len(roots))
	for m := range roots {
		modalities = append(modalities, string(m))
	}
	sort.Strings(modalities)

	for _, m := range modalities {
		if err := net.WriteNode(w, roots[pattern.Modality(m)]); err != nil {
			return fmt.Errorf("exporting %s network: %w", m, err)
		}
	}
	return nil
}

// ExportFile writes the text export to the given path.
func ExportFile(path string, net *network.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return Export(f, net)
}

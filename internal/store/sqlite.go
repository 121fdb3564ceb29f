package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

// SQLiteStore implements Store using SQLite for persistence. Each Save
// replaces the previous snapshot in a single transaction.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a store at dir/chrest.db, creating dir if needed.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "chrest.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Save snapshots the network, replacing any previous snapshot.
func (s *SQLiteStore) Save(ctx context.Context, net *network.Network) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"links", "roots", "nodes"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insertNode, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (ref, modality, contents, image, followed_by, named_by) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer insertNode.Close()

	insertLink, err := tx.PrepareContext(ctx,
		`INSERT INTO links (parent, position, test, child) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing link insert: %w", err)
	}
	defer insertLink.Close()

	// all nodes first: links reference children by ref, and the foreign
	// keys are enforced immediately
	for ref := 0; ref < net.Count(); ref++ {
		nd := net.Node(network.Ref(ref))
		_, err := insertNode.ExecContext(ctx, ref, string(nd.Contents().Modality()),
			nd.Contents().String(), nd.Image().String(),
			int(nd.FollowedBy()), int(nd.NamedBy()))
		if err != nil {
			return fmt.Errorf("saving node %d: %w", ref, err)
		}
	}
	for ref := 0; ref < net.Count(); ref++ {
		for pos, link := range net.Node(network.Ref(ref)).Children() {
			_, err := insertLink.ExecContext(ctx, ref, pos, link.Test.String(), int(link.Child))
			if err != nil {
				return fmt.Errorf("saving link %d/%d: %w", ref, pos, err)
			}
		}
	}

	for modality, ref := range net.Roots() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO roots (modality, ref) VALUES (?, ?)`,
			string(modality), int(ref)); err != nil {
			return fmt.Errorf("saving root %s: %w", modality, err)
		}
	}

	return tx.Commit()
}

// Load reconstructs the saved network. An empty database yields an empty
// network.
func (s *SQLiteStore) Load(ctx context.Context) (*network.Network, error) {
	net := network.New()

	rows, err := s.db.QueryContext(ctx,
		`SELECT ref, modality, contents, image, followed_by, named_by FROM nodes ORDER BY ref`)
	if err != nil {
		return nil, fmt.Errorf("loading nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ref, followedBy, namedBy  int
			modality, contents, image string
		)
		if err := rows.Scan(&ref, &modality, &contents, &image, &followedBy, &namedBy); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		contentsPat, err := pattern.Parse(pattern.Modality(modality), contents)
		if err != nil {
			return nil, fmt.Errorf("node %d contents: %w", ref, err)
		}
		imagePat, err := pattern.Parse(pattern.Modality(modality), image)
		if err != nil {
			return nil, fmt.Errorf("node %d image: %w", ref, err)
		}
		if err := net.RestoreNode(network.Ref(ref), contentsPat, imagePat,
			network.Ref(followedBy), network.Ref(namedBy)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading nodes: %w", err)
	}

	linkRows, err := s.db.QueryContext(ctx,
		`SELECT parent, position, test, child FROM links ORDER BY parent, position`)
	if err != nil {
		return nil, fmt.Errorf("loading links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var (
			parent, position, child int
			test                    string
		)
		if err := linkRows.Scan(&parent, &position, &test, &child); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		parentNode := net.Node(network.Ref(parent))
		if parentNode == nil {
			return nil, fmt.Errorf("link references missing node %d", parent)
		}
		testPat, err := pattern.Parse(parentNode.Contents().Modality(), test)
		if err != nil {
			return nil, fmt.Errorf("link %d/%d test: %w", parent, position, err)
		}
		if err := net.RestoreLink(network.Ref(parent), testPat, network.Ref(child)); err != nil {
			return nil, err
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("loading links: %w", err)
	}

	rootRows, err := s.db.QueryContext(ctx, `SELECT modality, ref FROM roots`)
	if err != nil {
		return nil, fmt.Errorf("loading roots: %w", err)
	}
	defer rootRows.Close()

	for rootRows.Next() {
		var (
			modality string
			ref      int
		)
		if err := rootRows.Scan(&modality, &ref); err != nil {
			return nil, fmt.Errorf("scanning root: %w", err)
		}
		if err := net.RestoreRoot(pattern.Modality(modality), network.Ref(ref)); err != nil {
			return nil, err
		}
	}
	if err := rootRows.Err(); err != nil {
		return nil, fmt.Errorf("loading roots: %w", err)
	}

	return net, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package mcp provides an MCP (Model Context Protocol) server for chrest.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Smileaty/chrest/internal/config"
	"github.com/Smileaty/chrest/internal/model"
	"github.com/Smileaty/chrest/internal/store"
)

// Server wraps the MCP SDK server around a persistent chrest model.
type Server struct {
	server *sdk.Server
	model  *model.Model
	store  store.Store
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "chrest")
	Version string // Server version
	Dir     string // Directory holding the network database
	Chrest  *config.ChrestConfig
}

// NewServer creates a new MCP server with chrest tools, loading any
// previously saved network from the store.
func NewServer(cfg *Config) (*Server, error) {
	st, err := store.NewSQLiteStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open network store: %w", err)
	}

	net, err := st.Load(context.Background())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load network: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server: mcpServer,
		model:  model.NewFromNetwork(cfg.Chrest, net, nil),
		store:  st,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

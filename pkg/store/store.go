// Package store provides project persistence for Slackline.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage (~/.config/slackline/projects)
//   - mongo: MongoDB-backed storage for server deployments
//
// The scheduling core never touches a Store; it receives task snapshots by
// value. Stores only serve the editing surfaces (CLI project commands, HTTP
// CRUD endpoints).
//
// # Usage
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/slackline/projects/
//
//	// Server
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "slackline",
//	})
//
//	p := project.New("House Build", tasks)
//	if err := st.Put(ctx, p); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"

	"github.com/slacklinehq/slackline/pkg/project"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("project not found")
)

// Store is the interface for project storage backends.
type Store interface {
	// Get retrieves a project by ID.
	// Returns ErrNotFound if the project doesn't exist.
	Get(ctx context.Context, id string) (*project.Project, error)

	// Put stores a project, replacing any existing project with the same ID.
	Put(ctx context.Context, p *project.Project) error

	// Delete removes a project. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns all stored projects. The order is backend-defined.
	List(ctx context.Context) ([]*project.Project, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

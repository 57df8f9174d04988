// Package testutils holds shared fixtures for tests.
package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	if len(opts) == 0 {
		opts = []loam.Option{loam.WithStrict(true), loam.WithVersioning(false)}
	}
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// SeedDocuments saves each id -> content pair into the repository.
func SeedDocuments(t *testing.T, repo core.Repository, docs map[string]string) {
	t.Helper()
	ctx := context.Background()
	for id, content := range docs {
		require.NoError(t, repo.Save(ctx, core.Document{ID: id, Content: content}), "seed %s", id)
	}
}

// Package loam reads entity profiles from a Loam document repository.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// ProfileDocument is the metadata shape of an entity document.
// Entity holds the raw record; it is decoded and validated by pkg/schema.
type ProfileDocument struct {
	Entity map[string]any `json:"entity" mapstructure:"entity"`
}

// Loader adapts a Loam repository to ports.ProfileSource.
type Loader struct {
	Repo *loam.TypedRepository[ProfileDocument]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ProfileDocument]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only strict Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return FromRepository(repo), nil
}

// FromRepository wraps an existing repository.
func FromRepository(repo core.Repository) *Loader {
	return New(loam.NewTypedRepository[ProfileDocument](repo))
}

// LoadProfiles implements ports.ProfileSource.
// Documents without an entity block are skipped; invalid ones yield a failed LoadResult.
func (l *Loader) LoadProfiles(ctx context.Context) ([]schema.LoadResult, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	results := make([]schema.LoadResult, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Data.Entity) == 0 {
			continue
		}
		res := schema.LoadResult{Path: filepath.ToSlash(doc.ID)}
		res.Profile, res.Err = schema.Parse(map[string]any{"entity": doc.Data.Entity})
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return strings.Compare(results[i].Path, results[j].Path) < 0
	})
	return results, nil
}

// LoadProfile reads a single entity document by ID.
func (l *Loader) LoadProfile(ctx context.Context, id string) schema.LoadResult {
	res := schema.LoadResult{Path: id}
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		res.Err = fmt.Errorf("loam get failed for %s: %w", id, err)
		return res
	}
	if len(doc.Data.Entity) == 0 {
		res.Err = fmt.Errorf("%w: %s: no entity block", schema.ErrMalformedEntity, id)
		return res
	}
	res.Profile, res.Err = schema.Parse(map[string]any{"entity": doc.Data.Entity})
	return res
}

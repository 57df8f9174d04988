package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
)

// EvidenceDir implements ports.EvidenceSource by walking a data room.
// Each top-level directory is a category; files below it are indexed by name.
type EvidenceDir struct {
	Root string
}

// NewEvidenceDir creates an evidence source rooted at root.
func NewEvidenceDir(root string) *EvidenceDir {
	return &EvidenceDir{Root: root}
}

// Evidence implements ports.EvidenceSource.
// A missing root yields an empty index.
func (e *EvidenceDir) Evidence(ctx context.Context) (domain.EvidenceIndex, error) {
	return ScanEvidence(ctx, e.Root)
}

// ScanEvidence indexes the files of each category directory directly below root.
// Directories starting with "_" and dotfiles are skipped. Loose files at the root are ignored.
func ScanEvidence(ctx context.Context, root string) (domain.EvidenceIndex, error) {
	index := domain.EvidenceIndex{}

	dirs, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan evidence in %s: %w", root, err)
	}

	for _, dir := range dirs {
		if !dir.IsDir() || strings.HasPrefix(dir.Name(), "_") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := os.ReadDir(filepath.Join(root, dir.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence in %s: %w", dir.Name(), err)
		}
		for _, f := range files {
			if f.IsDir() || strings.HasPrefix(f.Name(), ".") {
				continue
			}
			index.Add(dir.Name(), f.Name())
		}
	}
	return index, nil
}

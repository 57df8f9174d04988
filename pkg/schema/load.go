package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadResult is the outcome of loading one entity record.
// Exactly one of Profile (when Err is nil) or Err is meaningful.
type LoadResult struct {
	Path    string
	Profile domain.Profile
	Err     error
}

// OK reports whether the record loaded and validated.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// LoadFile reads, decodes and validates one YAML entity file.
func LoadFile(path string) LoadResult {
	res := LoadResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read entity file: %w", err)
		return res
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", ErrMalformedEntity, path, err)
		return res
	}
	if raw == nil {
		res.Err = fmt.Errorf("%w: %s: empty document", ErrMalformedEntity, path)
		return res
	}

	res.Profile, res.Err = Parse(raw)
	return res
}

// LoadDir loads every .yaml/.yml file of a directory in name order.
// A missing directory yields no results.
func LoadDir(dir string) ([]LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list entity directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]LoadResult, 0, len(names))
	for _, n := range names {
		results = append(results, LoadFile(filepath.Join(dir, n)))
	}
	return results, nil
}

// Split separates loaded profiles from failed results, preserving order.
func Split(results []LoadResult) ([]domain.Profile, []LoadResult) {
	var profiles []domain.Profile
	var failed []LoadResult
	for _, r := range results {
		if r.OK() {
			profiles = append(profiles, r.Profile)
		} else {
			failed = append(failed, r)
		}
	}
	return profiles, failed
}

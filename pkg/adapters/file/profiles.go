package file

import (
	"context"

	"github.com/aretw0/escrowrail/pkg/schema"
)

// ProfileDir implements ports.ProfileSource over a directory of YAML entity files.
type ProfileDir struct {
	Dir string
}

// NewProfileDir creates a profile source for dir.
func NewProfileDir(dir string) *ProfileDir {
	return &ProfileDir{Dir: dir}
}

// LoadProfiles implements ports.ProfileSource.
func (p *ProfileDir) LoadProfiles(ctx context.Context) ([]schema.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return schema.LoadDir(p.Dir)
}

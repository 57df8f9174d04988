package ports

import (
	"context"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/schema"
)

// ProfileSource supplies entity records.
// Each record yields one LoadResult so failed records stay visible to callers.
type ProfileSource interface {
	LoadProfiles(ctx context.Context) ([]schema.LoadResult, error)
}

// EvidenceSource supplies the evidence index.
// A missing evidence location must produce an empty index, not an error.
type EvidenceSource interface {
	Evidence(ctx context.Context) (domain.EvidenceIndex, error)
}

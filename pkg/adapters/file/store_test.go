package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/escrowrail/pkg/adapters/file"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/aretw0/escrowrail/pkg/ports/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.PlanStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	contract.RunPlanStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_AtomicOverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	plan := contract.SamplePlan("p1")
	require.NoError(t, store.Save(ctx, plan))
	plan.DealName = "Renamed"
	require.NoError(t, store.Save(ctx, plan))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1.json", entries[0].Name())

	loaded, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.DealName)

	raw, err := os.ReadFile(filepath.Join(dir, "p1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_legs": 1`)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	_, err := store.Load(context.Background(), "../secret")
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), contract.SamplePlan("")))
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))
	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
}

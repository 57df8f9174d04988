package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/escrowrail/pkg/adapters/file"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.ProfileSource  = (*file.ProfileDir)(nil)
	_ ports.EvidenceSource = (*file.EvidenceDir)(nil)
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScanEvidence(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "harbor", "KYC_Passport.pdf"))
	touch(t, filepath.Join(root, "harbor", ".DS_Store"))
	touch(t, filepath.Join(root, "harbor", "nested", "deep.pdf"))
	touch(t, filepath.Join(root, "issuer", "cis_issuer.pdf"))
	touch(t, filepath.Join(root, "_archive", "kyc_old.pdf"))
	touch(t, filepath.Join(root, "loose.pdf"))

	index, err := file.NewEvidenceDir(root).Evidence(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, index.Len())
	assert.Equal(t, []string{"kyc_passport.pdf", "cis_issuer.pdf"}, index.Files())
	assert.NotContains(t, index, "_archive")
}

func TestScanEvidenceMissingRoot(t *testing.T) {
	index, err := file.ScanEvidence(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.NotNil(t, index)
	assert.Zero(t, index.Len())
}

func TestProfileDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "issuer.yaml"), []byte(`entity:
  legal_name: Issuer Ltd
  jurisdiction: BS
  entity_type: corporation
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("entity: [unclosed"), 0644))

	results, err := file.NewProfileDir(dir).LoadProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Equal(t, "Issuer Ltd", results[1].Profile.LegalName)
}

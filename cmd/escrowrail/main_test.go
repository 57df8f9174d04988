package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issuerYAML = `entity:
  legal_name: Acme Issuer SPV
  jurisdiction: US-DE
  banking:
    settlement_bank: JPMorgan Chase Bank, N.A.
    swift_code: CHASUS33
    aba_routing: "021000021"
  signatories:
    - name: J. Doe
`

const investorYAML = `legal_name: Investor LLC
jurisdiction: US
signatories:
  - name: R. Roe
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func TestPlanSaveAndSignoff(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"data/entities/01_issuer.yaml":        issuerYAML,
		"data/entities/02_investor.yaml":      investorYAML,
		"data/evidence/acme/kyc_passport.pdf": "",
		"data/evidence/acme/cis_issuer.pdf":   "",
	})

	out, err := execute(t, "plan", "-n", "Acme MTN", "-a", "1,000,000", "--store", "file", "--auto-resolve", "--save", "--format", "json")
	require.NoError(t, err)

	var plan domain.EscrowPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan), out)
	assert.True(t, plan.OverallValid, "%v", plan.OverallIssues)
	assert.Equal(t, "1000000", plan.Terms.Amount.String())
	kyc, err := plan.Terms.Condition("ESC-002")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSatisfied, kyc.Status())
	assert.FileExists(t, filepath.Join(dir, ".escrowrail", "plans", plan.ID+".json"))

	out, err = execute(t, "plans", "list")
	require.NoError(t, err)
	assert.Equal(t, plan.ID+"\n", out)

	out, err = execute(t, "signoff", plan.ID, "ESC-006", "-s", "waived", "-m", "Funded outside escrow.")
	require.NoError(t, err)
	assert.Equal(t, "- **ESC-006** PENDING → WAIVED: Funded outside escrow.\n", out)

	_, err = execute(t, "signoff", plan.ID, "ESC-006", "-s", "failed", "-m", "Again.")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	out, err = execute(t, "plans", "show", plan.ID, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "**ESC-006**")
	assert.Contains(t, out, "Funded outside escrow.")
}

func TestValidateReportsFailures(t *testing.T) {
	setupProject(t, map[string]string{
		"data/entities/issuer.yaml": issuerYAML,
		"data/entities/broken.yaml": "legal_name: Broken Co\njurisdiction: Atlantis\n",
	})

	out, err := execute(t, "validate")
	assert.ErrorIs(t, err, errInvalidProfiles)
	assert.Contains(t, out, "FAIL  "+filepath.Join("data", "entities", "broken.yaml"))
	assert.Contains(t, out, "jurisdiction")
	assert.Contains(t, out, "(Acme Issuer SPV)")
}

func TestPlanRecordsUnloadableEntities(t *testing.T) {
	setupProject(t, map[string]string{
		"data/entities/issuer.yaml":   issuerYAML,
		"data/entities/investor.yaml": investorYAML,
		"data/entities/broken.yaml":   "legal_name: Broken Co\njurisdiction: Atlantis\n",
	})

	out, err := execute(t, "plan", "-n", "Partial Load", "--auto-resolve=false", "--save=false", "--format", "json")
	require.NoError(t, err)

	var plan domain.EscrowPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan), out)
	assert.Len(t, plan.Legs, 1)
	assert.Contains(t, plan.OverallIssues, "Could not load entity: "+filepath.Join("data", "entities", "broken.yaml"))
}

func TestRegistryCommands(t *testing.T) {
	out, err := execute(t, "registry", "banks")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "SWIFT"), lines[0])
	assert.Contains(t, out, "CHASUS33")

	out, err = execute(t, "registry", "agent", "irvtus3n")
	require.NoError(t, err)
	var agent map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &agent))
	assert.Equal(t, "IRVTUS3N", agent["swift"])

	_, err = execute(t, "registry", "agent", "NOPEXX00")
	assert.ErrorContains(t, err, "unknown escrow agent")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^escrowrail version \d+\.\d+\.\d+\n$`, out)
}

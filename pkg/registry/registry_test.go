package registry

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDirectoryLookups(t *testing.T) {
	dir := DefaultDirectory()

	b, ok := dir.Bank("chasus33")
	require.True(t, ok)
	assert.Equal(t, "021000021", b.RoutingNumber)
	assert.True(t, b.Tier.IsGSIB())
	assert.True(t, b.Offers(ServiceEscrow))

	_, ok = dir.Bank("NOPEXX00")
	assert.False(t, ok)

	ctl, ok := dir.Control("vn")
	require.True(t, ok)
	assert.Equal(t, "State Bank of Vietnam (SBV)", ctl.Authority)
	assert.Len(t, ctl.Clauses, 3)

	_, ok = dir.Control("US")
	assert.False(t, ok)
}

func TestCandidatesFallback(t *testing.T) {
	dir := DefaultDirectory()

	us := dir.Candidates("US")
	require.Len(t, us, 3)
	assert.Equal(t, "CHASUS33", us[0].Code)

	unknown := dir.Candidates("ZZ")
	require.Len(t, unknown, 1)
	assert.Equal(t, "CHASUS33", unknown[0].Code)

	// Returned slices are copies.
	us[0].Code = "MUTATED"
	assert.Equal(t, "CHASUS33", dir.Candidates("US")[0].Code)
}

func TestDirectoryBanksSortedCopy(t *testing.T) {
	dir := DefaultDirectory()
	banks := dir.Banks()
	require.NotEmpty(t, banks)
	for i := 1; i < len(banks); i++ {
		assert.Less(t, banks[i-1].Code, banks[i].Code)
	}

	banks[0].Name = "MUTATED"
	b, ok := dir.Bank(banks[0].Code)
	require.True(t, ok)
	assert.NotEqual(t, "MUTATED", b.Name)
}

func TestAgentsRosterOrderAndCapacity(t *testing.T) {
	agents := DefaultAgents()
	all := agents.All()
	require.Len(t, all, 5)
	assert.Equal(t, "CHASUS33", all[0].Code)
	assert.Equal(t, "NOSCBSNS", all[4].Code)

	ag, ok := agents.Agent("NOSCBSNS")
	require.True(t, ok)
	assert.True(t, ag.Handles(decimal.NewFromInt(250_000)))
	assert.False(t, ag.Handles(decimal.NewFromInt(50_000)))
	assert.False(t, ag.Handles(decimal.NewFromInt(600_000_000)))

	assert.True(t, Agent{}.Handles(decimal.NewFromInt(1)))
	assert.Equal(t, domain.EscrowAgentRef{Name: ag.Name, BankCode: "NOSCBSNS", Country: "BS", Score: 7}, ag.Ref(7))
}

func TestDirectoryConcurrentReaders(t *testing.T) {
	dir := DefaultDirectory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = dir.Bank("IRVTUS3N")
			_ = dir.Candidates("VN")
			_, _ = dir.Control("CN")
		}()
	}
	wg.Wait()
}

func TestLoadFileOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	content := `
currency_controls:
  AR:
    authority: Banco Central de la Republica Argentina
    clauses:
      - Access to the official FX market requires BCRA authorization
candidates:
  DEFAULT:
    - code: BARCGB22
      name: Barclays Bank PLC
      services: [settlement, correspondent]
      tier: GSIB
escrow_agents:
  - code: TESTUS33
    name: Test Escrow
    country: US
    services: [trustee]
    min_escrow: "1000"
    max_escrow: "2000"
    tier: GSIB
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	d, err := LoadFile(path)
	require.NoError(t, err)

	dir := NewDirectory(d)
	_, ok := dir.Control("VN")
	assert.False(t, ok, "currency_controls section replaces the defaults")
	ctl, ok := dir.Control("AR")
	require.True(t, ok)
	assert.Len(t, ctl.Clauses, 1)

	_, ok = dir.Bank("CHASUS33")
	assert.True(t, ok, "banks section keeps the defaults when absent")

	assert.Equal(t, "BARCGB22", dir.Candidates("US")[0].Code)

	agents := NewAgents(d.Agents)
	require.Len(t, agents.All(), 1)
	assert.True(t, agents.All()[0].MaxEscrow.Equal(decimal.NewFromInt(2000)))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("escrow_agents:\n  - name: nameless\n"))
	assert.ErrorContains(t, err, "has no code")

	_, err = Parse([]byte("escrow_agents:\n  - code: X\n    min_escrow: \"10\"\n    max_escrow: \"5\"\n"))
	assert.ErrorContains(t, err, "max_escrow below min_escrow")

	_, err = Parse([]byte("banks: [not: valid"))
	assert.Error(t, err)
}

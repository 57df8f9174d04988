package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileHelpers(t *testing.T) {
	p := Profile{
		LegalName:    "Issuer SPV",
		Jurisdiction: "us-de",
		EntityType:   EntityTypeSPV,
		Banking:      Banking{SettlementBank: "JPMorgan", BankCode: "CHASUS33", AccountNumber: "111"},
		Program:      &Program{SettlementMethod: "dtc/dwac fast"},
	}
	assert.Equal(t, "US", p.BaseJurisdiction())
	assert.True(t, p.IsSPV())
	assert.False(t, p.IsBank())
	assert.True(t, p.HasSettlementBank())
	assert.True(t, p.NeedsDepositoryClearing())
	assert.Equal(t, "111", p.Banking.Account())

	p.Banking.BeneficiaryAccountNumber = "222"
	assert.Equal(t, "222", p.Banking.Account())

	assert.False(t, Profile{}.NeedsDepositoryClearing())
	assert.False(t, Profile{Banking: Banking{SettlementBank: "X"}}.HasSettlementBank())
}

func TestJurisdictions(t *testing.T) {
	got := Jurisdictions([]Profile{
		{Jurisdiction: "VN"}, {Jurisdiction: "US-DE"}, {Jurisdiction: "us-ny"}, {Jurisdiction: ""},
	})
	assert.Equal(t, []string{"VN", "US"}, got)
}

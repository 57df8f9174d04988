package registry

import (
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
)

// Service names used by the reference data.
const (
	ServiceSettlement    = "settlement"
	ServiceCustody       = "custody"
	ServiceEscrow        = "escrow"
	ServiceCorrespondent = "correspondent"
	ServiceClearing      = "clearing"
	ServiceFX            = "fx"
	ServiceTrustee       = "trustee"
	ServicePayingAgent   = "paying_agent"
)

// DefaultCandidatesKey is the candidates key holding the global fallback list in YAML files.
const DefaultCandidatesKey = "DEFAULT"

var jpmCandidate = Candidate{
	Code:     "CHASUS33",
	Name:     "JPMorgan Chase Bank, N.A.",
	Services: []string{ServiceSettlement, ServiceCustody, ServiceEscrow, ServiceCorrespondent},
	Tier:     domain.TierGSIB,
	Notes:    "Largest US bank. Full DTC/DWAC capability.",
}

// Default returns the built-in reference data.
func Default() Data {
	return Data{
		Banks: []Bank{
			{
				Code: "CHASUS33", Name: "JPMorgan Chase Bank, N.A.", Country: "US", RoutingNumber: "021000021",
				Services:         []string{ServiceSettlement, ServiceCustody, ServiceEscrow, ServiceCorrespondent, ServiceFX, ServiceClearing, ServicePayingAgent},
				Tier:             domain.TierGloballySystemic,
				DomesticClearing: true,
			},
			{
				Code: "IRVTUS3N", Name: "The Bank of New York Mellon Corporation", Country: "US", RoutingNumber: "021000018",
				Services:         []string{ServiceSettlement, ServiceCustody, ServiceClearing, ServiceCorrespondent, ServiceTrustee, ServicePayingAgent},
				Tier:             domain.TierGloballySystemic,
				DomesticClearing: true,
			},
			{
				Code: "BOFAUS3N", Name: "Bank of America / Merrill Lynch", Country: "US", RoutingNumber: "026009593",
				Services:         []string{ServiceSettlement, "brokerage", ServiceCustody},
				Tier:             domain.TierGloballySystemic,
				DomesticClearing: true,
			},
			{
				Code: "BARCGB22", Name: "Barclays Bank PLC", Country: "GB",
				Services: []string{ServiceSettlement, ServiceCustody, ServiceCorrespondent, ServiceFX},
				Tier:     domain.TierGloballySystemic,
			},
			{
				Code: "BFTVVNVX", Name: "Vietcombank", Country: "VN",
				Services:         []string{ServiceSettlement, ServiceFX, ServiceCorrespondent},
				Tier:             domain.TierDomesticMajor,
				DomesticClearing: true,
			},
			{
				Code: "SCBLVNVX", Name: "Standard Chartered Bank Vietnam", Country: "VN",
				Services: []string{ServiceSettlement, ServiceCorrespondent, "trade_finance"},
				Tier:     domain.TierInternational,
			},
			{
				Code: "NOSCBSNS", Name: "Scotiabank (Bahamas) Limited", Country: "BS",
				Services: []string{ServiceSettlement, ServiceCorrespondent, ServiceFX},
				Tier:     domain.TierInternational,
			},
		},
		CurrencyControls: map[string]CurrencyControl{
			"VN": {
				Authority: "State Bank of Vietnam (SBV)",
				Clauses: []string{
					"Foreign currency transactions require SBV approval",
					"Repatriation of profits subject to tax clearance",
					"Capital account transactions require registration",
				},
			},
			"CN": {
				Authority: "State Administration of Foreign Exchange (SAFE)",
				Clauses: []string{
					"All cross-border capital flows require SAFE approval",
					"Strict capital account controls",
				},
			},
		},
		Candidates: map[string][]Candidate{
			"US": {
				jpmCandidate,
				{
					Code: "IRVTUS3N", Name: "The Bank of New York Mellon Corporation",
					Services: []string{ServiceSettlement, ServiceCustody, ServiceClearing, ServiceCorrespondent},
					Tier:     domain.TierGSIB,
					Notes:    "Largest global custodian. Specialist in securities settlement.",
				},
				{
					Code: "BOFAUS3N", Name: "Bank of America / Merrill Lynch",
					Services: []string{ServiceSettlement, "brokerage", ServiceCustody},
					Tier:     domain.TierGSIB,
					Notes:    "Full-service institutional banking.",
				},
			},
			"BS": {
				{
					Code: "NOSCBSNS", Name: "Scotiabank (Bahamas) Limited",
					Services: []string{ServiceSettlement, ServiceCorrespondent, ServiceFX},
					Tier:     domain.TierInternational,
					Notes:    "Leading bank in the Bahamas with international correspondent access.",
				},
				{
					Code: "FCIBKYKY", Name: "FirstCaribbean International Bank",
					Services: []string{ServiceSettlement, ServiceCorrespondent},
					Tier:     domain.TierRegional,
					Notes:    "CIBC subsidiary. Caribbean specialist.",
				},
			},
			"GB": {
				{
					Code: "BARCGB22", Name: "Barclays Bank PLC",
					Services: []string{ServiceSettlement, ServiceCustody, ServiceCorrespondent, ServiceFX},
					Tier:     domain.TierGSIB,
					Notes:    "Major UK clearing bank.",
				},
			},
			"VN": {
				{
					Code: "BFTVVNVX", Name: "Vietcombank",
					Services: []string{ServiceSettlement, ServiceFX, ServiceCorrespondent},
					Tier:     domain.TierDomesticMajor,
					Notes:    "Largest commercial bank in Vietnam.",
				},
				{
					Code: "SCBLVNVX", Name: "Standard Chartered Bank Vietnam",
					Services: []string{ServiceSettlement, ServiceCorrespondent, "trade_finance"},
					Tier:     domain.TierInternational,
					Notes:    "International bank with strong cross-border capability.",
				},
			},
		},
		DefaultCandidates: []Candidate{
			{
				Code:     jpmCandidate.Code,
				Name:     jpmCandidate.Name,
				Services: jpmCandidate.Services,
				Tier:     jpmCandidate.Tier,
				Notes:    "Global correspondent bank. Covers most jurisdictions.",
			},
		},
		Agents: []Agent{
			{
				Code: "CHASUS33", Name: "JPMorgan Chase Bank, N.A.", Country: "US",
				Services:           []string{"institutional_escrow", ServicePayingAgent, ServiceTrustee},
				MinEscrow:          decimal.NewFromInt(1_000_000),
				MaxEscrow:          decimal.NewFromInt(50_000_000_000),
				Tier:               domain.TierGSIB,
				DepositoryClearing: true,
				SecondaryMarkets:   []string{"BS"},
			},
			{
				Code: "IRVTUS3N", Name: "The Bank of New York Mellon Corporation", Country: "US",
				Services:           []string{"institutional_escrow", ServiceCustody, ServiceTrustee, ServicePayingAgent},
				MinEscrow:          decimal.NewFromInt(5_000_000),
				MaxEscrow:          decimal.NewFromInt(100_000_000_000),
				Tier:               domain.TierGSIB,
				DepositoryClearing: true,
				SecondaryMarkets:   []string{"BS"},
			},
			{
				Code: "BOFAUS3N", Name: "Bank of America / Merrill Lynch", Country: "US",
				Services:           []string{"institutional_escrow", ServiceSettlement, "brokerage"},
				MinEscrow:          decimal.NewFromInt(1_000_000),
				MaxEscrow:          decimal.NewFromInt(25_000_000_000),
				Tier:               domain.TierGSIB,
				DepositoryClearing: true,
				SecondaryMarkets:   []string{"BS"},
			},
			{
				Code: "BARCGB22", Name: "Barclays Bank PLC", Country: "GB",
				Services:  []string{"institutional_escrow", ServiceCorrespondent, ServiceFX},
				MinEscrow: decimal.NewFromInt(5_000_000),
				MaxEscrow: decimal.NewFromInt(10_000_000_000),
				Tier:      domain.TierGSIB,
			},
			{
				Code: "NOSCBSNS", Name: "Scotiabank (Bahamas) Limited", Country: "BS",
				Services:  []string{"regional_escrow", ServiceCorrespondent, ServiceFX},
				MinEscrow: decimal.NewFromInt(100_000),
				MaxEscrow: decimal.NewFromInt(500_000_000),
				Tier:      domain.TierInternational,
			},
		},
	}
}

// DefaultDirectory returns a Directory over the built-in data.
func DefaultDirectory() *Directory {
	return NewDirectory(Default())
}

// DefaultAgents returns the built-in escrow agent roster.
func DefaultAgents() *Agents {
	return NewAgents(Default().Agents)
}

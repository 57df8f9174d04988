package domain

import "strings"

// EntityTypeSPV is the entity type of a special purpose vehicle.
const EntityTypeSPV = "special_purpose_vehicle"

// depositoryMethods are program settlement methods that clear through a central depository.
var depositoryMethods = map[string]bool{
	"DTC/DWAC":      true,
	"DTC/DWAC FAST": true,
}

// Profile is the typed record of a deal participant.
// It is decoded and validated once at the boundary (see pkg/schema).
type Profile struct {
	LegalName    string      `json:"legal_name" yaml:"legal_name" mapstructure:"legal_name"`
	Jurisdiction string      `json:"jurisdiction" yaml:"jurisdiction" mapstructure:"jurisdiction"`
	EntityType   string      `json:"entity_type" yaml:"entity_type" mapstructure:"entity_type"`
	Regulatory   Regulatory  `json:"regulatory_status" yaml:"regulatory_status" mapstructure:"regulatory_status"`
	Banking      Banking     `json:"banking" yaml:"banking" mapstructure:"banking"`
	Program      *Program    `json:"mtn_program,omitempty" yaml:"mtn_program,omitempty" mapstructure:"mtn_program"`
	Signatories  []Signatory `json:"signatories,omitempty" yaml:"signatories,omitempty" mapstructure:"signatories"`
}

// Regulatory holds the regulatory flags of an entity.
type Regulatory struct {
	IsBank bool `json:"is_bank" yaml:"is_bank" mapstructure:"is_bank"`
}

// Banking is the optional banking sub-record of an entity.
type Banking struct {
	SettlementBank           string `json:"settlement_bank,omitempty" yaml:"settlement_bank,omitempty" mapstructure:"settlement_bank"`
	BankCode                 string `json:"swift_code,omitempty" yaml:"swift_code,omitempty" mapstructure:"swift_code"`
	RoutingNumber            string `json:"aba_routing,omitempty" yaml:"aba_routing,omitempty" mapstructure:"aba_routing"`
	AccountNumber            string `json:"account_number,omitempty" yaml:"account_number,omitempty" mapstructure:"account_number"`
	BeneficiaryAccountNumber string `json:"beneficiary_account_number,omitempty" yaml:"beneficiary_account_number,omitempty" mapstructure:"beneficiary_account_number"`
	Custodian                string `json:"custodian,omitempty" yaml:"custodian,omitempty" mapstructure:"custodian"`
	CorrespondentBank        string `json:"correspondent_bank,omitempty" yaml:"correspondent_bank,omitempty" mapstructure:"correspondent_bank"`
}

// Account returns the beneficiary account number, falling back to the plain account number.
func (b Banking) Account() string {
	if b.BeneficiaryAccountNumber != "" {
		return b.BeneficiaryAccountNumber
	}
	return b.AccountNumber
}

// Program describes a securities program run by the entity.
type Program struct {
	SettlementMethod string `json:"settlement_method,omitempty" yaml:"settlement_method,omitempty" mapstructure:"settlement_method"`
}

// Signatory is a person authorized to sign for the entity.
type Signatory struct {
	Name           string `json:"name" yaml:"name" mapstructure:"name"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	CanBindCompany bool   `json:"can_bind_company,omitempty" yaml:"can_bind_company,omitempty" mapstructure:"can_bind_company"`
}

// BaseJurisdiction returns the upper-cased country prefix (e.g. "US" for "US-DE").
func (p Profile) BaseJurisdiction() string {
	base, _, _ := strings.Cut(strings.TrimSpace(p.Jurisdiction), "-")
	return strings.ToUpper(base)
}

// IsBank reports whether the entity is itself a regulated bank.
func (p Profile) IsBank() bool {
	return p.Regulatory.IsBank
}

// IsSPV reports whether the entity is a special purpose vehicle.
func (p Profile) IsSPV() bool {
	return p.EntityType == EntityTypeSPV
}

// HasSettlementBank is true when both a settlement bank and its bank code are on file.
func (p Profile) HasSettlementBank() bool {
	return p.Banking.SettlementBank != "" && p.Banking.BankCode != ""
}

// NeedsDepositoryClearing reports whether the entity's program settles through a depository.
func (p Profile) NeedsDepositoryClearing() bool {
	if p.Program == nil {
		return false
	}
	return depositoryMethods[strings.ToUpper(strings.TrimSpace(p.Program.SettlementMethod))]
}

// Jurisdictions returns the distinct base jurisdictions of the profiles in input order.
func Jurisdictions(profiles []Profile) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range profiles {
		j := p.BaseJurisdiction()
		if j == "" || seen[j] {
			continue
		}
		seen[j] = true
		out = append(out, j)
	}
	return out
}

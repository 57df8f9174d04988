package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency escrow falls back to when the requested one is not convertible.
const BaseCurrency = "USD"

var freelyConvertible = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CHF": true, "JPY": true,
	"CAD": true, "AUD": true, "SGD": true, "HKD": true,
}

// NormalizeCurrency trims and upper-cases an ISO currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsFreelyConvertible reports whether an ISO currency code is on the convertible allow-list.
func IsFreelyConvertible(code string) bool {
	return freelyConvertible[NormalizeCurrency(code)]
}

// ConvertibleCurrencies returns the allow-list in sorted order.
func ConvertibleCurrencies() []string {
	out := make([]string, 0, len(freelyConvertible))
	for c := range freelyConvertible {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// EscrowAgentRef identifies the escrow agent holding funds.
type EscrowAgentRef struct {
	Name     string `json:"name"`
	BankCode string `json:"swift"`
	Country  string `json:"country"`
	Score    int    `json:"score,omitempty"`
}

// EscrowTerms is the escrow arrangement of a plan.
type EscrowTerms struct {
	Agent             EscrowAgentRef     `json:"escrow_agent"`
	RequestedCurrency string             `json:"requested_currency,omitempty"`
	Currency          string             `json:"escrow_currency"`
	Amount            decimal.Decimal    `json:"escrow_amount"`
	EscrowType        string             `json:"escrow_type"`
	ReleaseMechanism  string             `json:"release_mechanism"`
	Conditions        []*EscrowCondition `json:"conditions"`
	ComplianceNotes   []string           `json:"compliance_notes"`
}

// AllConditionsMet is true when every condition is satisfied or waived.
func (t *EscrowTerms) AllConditionsMet() bool {
	for _, c := range t.Conditions {
		if !c.IsMet() {
			return false
		}
	}
	return true
}

// MetCount returns the number of satisfied or waived conditions.
func (t *EscrowTerms) MetCount() int {
	n := 0
	for _, c := range t.Conditions {
		if c.IsMet() {
			n++
		}
	}
	return n
}

// PendingCount returns the number of PENDING conditions.
func (t *EscrowTerms) PendingCount() int {
	n := 0
	for _, c := range t.Conditions {
		if c.Status() == StatusPending {
			n++
		}
	}
	return n
}

// Condition looks a condition up by ID.
func (t *EscrowTerms) Condition(id string) (*EscrowCondition, error) {
	for _, c := range t.Conditions {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrConditionNotFound, id)
}

// Snapshot returns a copy of the terms whose conditions can be mutated independently.
func (t *EscrowTerms) Snapshot() *EscrowTerms {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Conditions = make([]*EscrowCondition, len(t.Conditions))
	for i, c := range t.Conditions {
		cc := *c
		cp.Conditions[i] = &cc
	}
	cp.ComplianceNotes = append([]string(nil), t.ComplianceNotes...)
	return &cp
}

// EscrowPlan is the complete escrow and settlement rail plan for a deal group.
type EscrowPlan struct {
	ID              string                    `json:"plan_id"`
	DealName        string                    `json:"deal_name"`
	CreatedAt       time.Time                 `json:"created_at"`
	Terms           *EscrowTerms              `json:"escrow_terms"`
	Legs            []SettlementLeg           `json:"legs"`
	BankAssignments map[string]BankAssignment `json:"entity_bank_assignments"`
	OverallValid    bool                      `json:"overall_valid"`
	OverallIssues   []string                  `json:"overall_issues"`
	Recommendations []string                  `json:"recommendations"`
}

// TotalLegs returns the number of settlement legs.
func (p *EscrowPlan) TotalLegs() int {
	return len(p.Legs)
}

// ValidLegs returns the number of legs that passed validation.
func (p *EscrowPlan) ValidLegs() int {
	n := 0
	for _, l := range p.Legs {
		if l.IsValid {
			n++
		}
	}
	return n
}

// TotalNodes returns the node count across all legs.
func (p *EscrowPlan) TotalNodes() int {
	n := 0
	for _, l := range p.Legs {
		n += l.NodeCount()
	}
	return n
}

// AssignedEntities returns the entity names with a bank assignment, sorted.
func (p *EscrowPlan) AssignedEntities() []string {
	names := make([]string, 0, len(p.BankAssignments))
	for name := range p.BankAssignments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON adds the derived counters to the serialized plan.
// Map keys are emitted in sorted order by encoding/json, keeping the output deterministic.
func (p *EscrowPlan) MarshalJSON() ([]byte, error) {
	type plan EscrowPlan
	return json.Marshal(struct {
		*plan
		TotalLegs  int `json:"total_legs"`
		ValidLegs  int `json:"valid_legs"`
		TotalNodes int `json:"total_nodes"`
	}{
		plan:       (*plan)(p),
		TotalLegs:  p.TotalLegs(),
		ValidLegs:  p.ValidLegs(),
		TotalNodes: p.TotalNodes(),
	})
}

// UnmarshalJSON ignores the derived counters.
func (p *EscrowPlan) UnmarshalJSON(data []byte) error {
	type plan EscrowPlan
	var raw plan
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = EscrowPlan(raw)
	return nil
}

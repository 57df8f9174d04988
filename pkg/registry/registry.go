// Package registry holds the read-only reference data used to plan settlement rails:
// the bank directory, per-jurisdiction candidate banks, currency controls and
// the escrow agent roster.
//
// A Directory or Agents value is never mutated after construction and can be
// shared by concurrent callers.
package registry

import (
	"slices"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
)

// Bank is a known bank keyed by its bank identifier code.
type Bank struct {
	Code             string      `yaml:"code" json:"swift"`
	Name             string      `yaml:"name" json:"name"`
	Country          string      `yaml:"country" json:"country"`
	RoutingNumber    string      `yaml:"aba_routing,omitempty" json:"aba_routing,omitempty"`
	Services         []string    `yaml:"services" json:"services"`
	Tier             domain.Tier `yaml:"tier" json:"tier"`
	DomesticClearing bool        `yaml:"domestic_clearing,omitempty" json:"domestic_clearing,omitempty"`
}

// Offers reports whether the bank provides a service.
func (b Bank) Offers(service string) bool {
	return slices.Contains(b.Services, service)
}

// CurrencyControl is the regime of a jurisdiction with active currency controls.
type CurrencyControl struct {
	Authority string   `yaml:"authority" json:"authority"`
	Clauses   []string `yaml:"clauses" json:"clauses"`
}

// Candidate is a bank that may be recommended to an entity lacking one.
type Candidate struct {
	Code     string      `yaml:"code" json:"swift"`
	Name     string      `yaml:"name" json:"name"`
	Services []string    `yaml:"services" json:"services"`
	Tier     domain.Tier `yaml:"tier" json:"tier"`
	Notes    string      `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Offers reports whether the candidate provides a service.
func (c Candidate) Offers(service string) bool {
	return slices.Contains(c.Services, service)
}

// Agent is an institution able to act as escrow agent.
type Agent struct {
	Code               string          `yaml:"code" json:"swift"`
	Name               string          `yaml:"name" json:"name"`
	Country            string          `yaml:"country" json:"country"`
	Services           []string        `yaml:"services" json:"escrow_services"`
	MinEscrow          decimal.Decimal `yaml:"min_escrow" json:"min_escrow"`
	MaxEscrow          decimal.Decimal `yaml:"max_escrow" json:"max_escrow"`
	Tier               domain.Tier     `yaml:"tier" json:"tier"`
	DepositoryClearing bool            `yaml:"dtc_dwac,omitempty" json:"dtc_dwac,omitempty"`
	SecondaryMarkets   []string        `yaml:"secondary_markets,omitempty" json:"secondary_markets,omitempty"`
}

// Offers reports whether the agent provides an escrow service.
func (a Agent) Offers(service string) bool {
	return slices.Contains(a.Services, service)
}

// Handles reports whether amount is within the agent's capacity.
// A zero bound is treated as unbounded.
func (a Agent) Handles(amount decimal.Decimal) bool {
	if !a.MinEscrow.IsZero() && amount.LessThan(a.MinEscrow) {
		return false
	}
	if !a.MaxEscrow.IsZero() && amount.GreaterThan(a.MaxEscrow) {
		return false
	}
	return true
}

// Ref returns the plan-facing identity of the agent.
func (a Agent) Ref(score int) domain.EscrowAgentRef {
	return domain.EscrowAgentRef{Name: a.Name, BankCode: a.Code, Country: a.Country, Score: score}
}

// Directory is the bank and currency-control lookup.
type Directory struct {
	banks      map[string]Bank
	controls   map[string]CurrencyControl
	candidates map[string][]Candidate
	fallback   []Candidate
}

// Agents is the ordered escrow agent roster.
type Agents struct {
	list []Agent
}

// NewDirectory builds a Directory from the given data. Input is copied.
func NewDirectory(d Data) *Directory {
	dir := &Directory{
		banks:      make(map[string]Bank, len(d.Banks)),
		controls:   make(map[string]CurrencyControl, len(d.CurrencyControls)),
		candidates: make(map[string][]Candidate, len(d.Candidates)),
		fallback:   slices.Clone(d.DefaultCandidates),
	}
	for _, b := range d.Banks {
		dir.banks[normalize(b.Code)] = b
	}
	for j, c := range d.CurrencyControls {
		dir.controls[normalize(j)] = c
	}
	for j, list := range d.Candidates {
		dir.candidates[normalize(j)] = slices.Clone(list)
	}
	return dir
}

// Bank looks up a bank by its identifier code.
func (d *Directory) Bank(code string) (Bank, bool) {
	b, ok := d.banks[normalize(code)]
	return b, ok
}

// Control returns the currency-control regime of a jurisdiction, if any.
func (d *Directory) Control(jurisdiction string) (CurrencyControl, bool) {
	c, ok := d.controls[normalize(jurisdiction)]
	return c, ok
}

// Candidates returns the candidate banks of a jurisdiction, or the global
// default list when the jurisdiction is not known.
func (d *Directory) Candidates(jurisdiction string) []Candidate {
	if list, ok := d.candidates[normalize(jurisdiction)]; ok && len(list) > 0 {
		return slices.Clone(list)
	}
	return slices.Clone(d.fallback)
}

// Banks returns every bank sorted by code.
func (d *Directory) Banks() []Bank {
	out := make([]Bank, 0, len(d.banks))
	for _, b := range d.banks {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Bank) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// NewAgents builds an agent roster. Order is preserved and used to break ties.
func NewAgents(list []Agent) *Agents {
	return &Agents{list: slices.Clone(list)}
}

// All returns the agents in roster order.
func (a *Agents) All() []Agent {
	return slices.Clone(a.list)
}

// Agent looks up an agent by code.
func (a *Agents) Agent(code string) (Agent, bool) {
	for _, ag := range a.list {
		if normalize(ag.Code) == normalize(code) {
			return ag, true
		}
	}
	return Agent{}, false
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

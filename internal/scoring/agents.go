package scoring

import (
	"slices"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/registry"
)

// AgentSelection is the winning escrow agent and how it scored.
type AgentSelection struct {
	Agent registry.Agent
	Rules Breakdown
}

// Score returns the total points of the selection.
func (a AgentSelection) Score() int {
	return a.Rules.Total()
}

// Ref returns the plan-facing identity of the selected agent.
func (a AgentSelection) Ref() domain.EscrowAgentRef {
	return a.Agent.Ref(a.Score())
}

// SelectAgent picks the one escrow agent shared by the whole deal group.
// It is recomputed on every call. Ties keep roster order.
// ok is false only when the roster is empty.
func (s *Selector) SelectAgent(profiles []domain.Profile, currency string) (AgentSelection, bool) {
	jurisdictions := domain.Jurisdictions(profiles)
	needsDepository := slices.ContainsFunc(profiles, domain.Profile.NeedsDepositoryClearing)

	var (
		best  AgentSelection
		found bool
	)
	for _, ag := range s.agents.All() {
		rules := s.scoreAgent(ag, jurisdictions, needsDepository, currency)
		if !found || rules.Total() > best.Rules.Total() {
			best, found = AgentSelection{Agent: ag, Rules: rules}, true
		}
	}
	return best, found
}

func (s *Selector) scoreAgent(ag registry.Agent, jurisdictions []string, needsDepository bool, currency string) Breakdown {
	w := s.weights.Agent
	var b Breakdown
	b.add("base", w.Base, true)
	b.add("gsib", w.GSIB, ag.Tier.IsGSIB())
	b.add("depository", w.Depository, needsDepository && ag.DepositoryClearing)
	b.add("trustee", w.Trustee, ag.Offers(registry.ServiceTrustee))
	b.add("paying_agent", w.PayingAgent, ag.Offers(registry.ServicePayingAgent))
	b.add("custody", w.Custody, ag.Offers(registry.ServiceCustody))
	b.add("jurisdiction", w.Jurisdiction, slices.Contains(jurisdictions, ag.Country))
	b.add("secondary_market", w.Secondary, slices.ContainsFunc(ag.SecondaryMarkets, func(m string) bool {
		return slices.Contains(jurisdictions, m)
	}))
	b.add("convertible", w.Convertible, domain.IsFreelyConvertible(currency))
	return b
}

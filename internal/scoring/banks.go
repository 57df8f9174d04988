package scoring

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/registry"
)

// UnknownEntity is the map key used for a profile without a legal name.
const UnknownEntity = "Unknown"

// AssignBanks returns the settlement bank of every profile, keyed by legal name.
// Banking data already on file is copied verbatim with source "existing".
// Profiles lacking it get the best scoring candidate of their jurisdiction.
// A profile is absent from the result only when no candidate is available.
func (s *Selector) AssignBanks(profiles []domain.Profile) map[string]domain.BankAssignment {
	out := make(map[string]domain.BankAssignment, len(profiles))
	for _, p := range profiles {
		name := p.LegalName
		if name == "" {
			name = UnknownEntity
		}

		if p.HasSettlementBank() {
			out[name] = domain.BankAssignment{
				Bank:          p.Banking.SettlementBank,
				BankCode:      p.Banking.BankCode,
				RoutingNumber: p.Banking.RoutingNumber,
				Account:       p.Banking.Account(),
				Source:        domain.SourceExisting,
			}
			continue
		}

		jur := p.BaseJurisdiction()
		best, rules, ok := s.RankCandidates(s.dir.Candidates(jur), p)
		if !ok {
			continue
		}

		label := jur
		if label == "" {
			label = "unspecified"
		}
		out[name] = domain.BankAssignment{
			Bank:     best.Name,
			BankCode: best.Code,
			Source:   domain.SourceRecommended,
			Rationale: fmt.Sprintf("Best fit for %s jurisdiction. Tier: %s. Rules: %s. Score: %d.",
				label, best.Tier, rules, rules.Total()),
			Score: rules.Total(),
		}
	}
	return out
}

// RankCandidates scores every candidate for the profile and returns the winner.
// Ties keep the earlier candidate.
func (s *Selector) RankCandidates(candidates []registry.Candidate, p domain.Profile) (registry.Candidate, Breakdown, bool) {
	var (
		best      registry.Candidate
		bestRules Breakdown
		found     bool
	)
	for _, c := range candidates {
		rules := s.scoreCandidate(c, p)
		if !found || rules.Total() > bestRules.Total() {
			best, bestRules, found = c, rules, true
		}
	}
	return best, bestRules, found
}

func (s *Selector) scoreCandidate(c registry.Candidate, p domain.Profile) Breakdown {
	w := s.weights.Bank
	var b Breakdown
	b.add("base", w.Base, true)
	b.add("gsib", w.GSIB, c.Tier.IsGSIB())
	b.add("settlement", w.Settlement, c.Offers(registry.ServiceSettlement))
	b.add("depository", w.Depository, p.NeedsDepositoryClearing() &&
		(c.Offers(registry.ServiceClearing) || c.Offers(registry.ServiceCustody)))
	b.add("spv_custody", w.SPVCustody, p.IsSPV() && c.Offers(registry.ServiceCustody))
	b.add("custodian_match", w.Custodian, custodianMatches(p.Banking.Custodian, c.Name))
	b.add("escrow", w.Escrow, c.Offers(registry.ServiceEscrow))
	b.add("correspondent", w.Correspondent, c.Offers(registry.ServiceCorrespondent))
	return b
}

// custodianMatches reports whether the candidate's full name appears in the
// recorded custodian, ignoring case.
func custodianMatches(custodian, bank string) bool {
	custodian = strings.ToLower(strings.TrimSpace(custodian))
	bank = strings.ToLower(strings.TrimSpace(bank))
	if custodian == "" || bank == "" {
		return false
	}
	return strings.Contains(custodian, bank)
}

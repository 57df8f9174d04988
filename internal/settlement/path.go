// Package settlement resolves banking chains between entities and assembles escrow plans.
package settlement

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/registry"
)

const minPathNodes = 3

// Resolver builds and validates the settlement chain between two entities.
// It is a pure function of its inputs and the injected directory.
type Resolver struct {
	dir *registry.Directory
}

// NewResolver creates a Resolver over a bank directory.
func NewResolver(dir *registry.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve builds the chain originator -> [partner bank] -> [correspondent] ->
// [correspondent] -> [beneficiary bank] -> beneficiary and validates it.
// Missing banking data never fails; it surfaces as validation issues.
func (r *Resolver) Resolve(originator, beneficiary domain.Profile, currency string) domain.SettlementPath {
	currency = domain.NormalizeCurrency(currency)
	path := domain.SettlementPath{
		Originator:  entityName(originator),
		Beneficiary: entityName(beneficiary),
		Currency:    currency,
	}

	path.Nodes = append(path.Nodes, r.originatorSide(originator, &path)...)
	path.Nodes = append(path.Nodes, r.beneficiarySide(beneficiary, &path)...)
	for i := range path.Nodes {
		path.Nodes[i].Position = i + 1
	}

	r.checkFX(originator, beneficiary, &path)
	r.validate(&path)
	return path
}

func (r *Resolver) originatorSide(p domain.Profile, path *domain.SettlementPath) []domain.BankNode {
	nodes := []domain.BankNode{r.entityNode(p, domain.RoleOriginator)}
	if p.IsBank() {
		return nodes
	}
	if p.HasSettlementBank() {
		nodes = append(nodes, r.partnerNode(p, domain.RolePartnerBank))
		path.ValidationNotes = append(path.ValidationNotes, fmt.Sprintf(
			"%s is not a bank. Uses %s [%s] as partner bank for SWIFT rails. This is standard institutional practice.",
			entityName(p), p.Banking.SettlementBank, p.Banking.BankCode))
	}
	if p.Banking.CorrespondentBank != "" {
		nodes = append(nodes, correspondentNode(p))
	}
	return nodes
}

func (r *Resolver) beneficiarySide(p domain.Profile, path *domain.SettlementPath) []domain.BankNode {
	var nodes []domain.BankNode
	if !p.IsBank() {
		if p.Banking.CorrespondentBank != "" {
			nodes = append(nodes, correspondentNode(p))
		}
		if p.HasSettlementBank() {
			nodes = append(nodes, r.partnerNode(p, domain.RoleBeneficiaryBank))
			path.ValidationNotes = append(path.ValidationNotes, fmt.Sprintf(
				"%s is not a bank. Receives through %s [%s].",
				entityName(p), p.Banking.SettlementBank, p.Banking.BankCode))
		}
	}
	return append(nodes, r.entityNode(p, domain.RoleBeneficiary))
}

// entityNode is the entity itself. A regulated bank carries its own bank code.
func (r *Resolver) entityNode(p domain.Profile, role domain.Role) domain.BankNode {
	n := domain.BankNode{
		Name:    entityName(p),
		Country: p.BaseJurisdiction(),
		Role:    role,
		Tier:    domain.TierUnknown,
	}
	if p.IsBank() {
		n.BankCode = p.Banking.BankCode
		n.RoutingNumber = p.Banking.RoutingNumber
		if b, ok := r.dir.Bank(p.Banking.BankCode); ok {
			n.Services = b.Services
			n.Tier = b.Tier
		}
	}
	return n
}

// partnerNode is the settlement bank named in the entity's banking data,
// enriched from the directory when the code is known.
func (r *Resolver) partnerNode(p domain.Profile, role domain.Role) domain.BankNode {
	n := domain.BankNode{
		Name:          p.Banking.SettlementBank,
		BankCode:      p.Banking.BankCode,
		Country:       p.BaseJurisdiction(),
		Role:          role,
		RoutingNumber: p.Banking.RoutingNumber,
		AccountRef:    p.Banking.Account(),
		Tier:          domain.TierUnknown,
	}
	if b, ok := r.dir.Bank(p.Banking.BankCode); ok {
		n.Country = b.Country
		n.Services = b.Services
		n.Tier = b.Tier
	}
	return n
}

func correspondentNode(p domain.Profile) domain.BankNode {
	return domain.BankNode{
		Name: p.Banking.CorrespondentBank,
		Role: domain.RoleCorrespondent,
		Tier: domain.TierUnknown,
	}
}

func (r *Resolver) checkFX(originator, beneficiary domain.Profile, path *domain.SettlementPath) {
	oj, bj := originator.BaseJurisdiction(), beneficiary.BaseJurisdiction()
	if oj == bj {
		return
	}
	path.RequiresFX = true

	var authorities []string
	for _, j := range []string{oj, bj} {
		ctl, ok := r.dir.Control(j)
		if !ok {
			continue
		}
		path.FXApprovalRequired = true
		authorities = append(authorities, ctl.Authority)
		for _, clause := range ctl.Clauses {
			path.ValidationNotes = append(path.ValidationNotes, fmt.Sprintf("FX Control (%s): %s", j, clause))
		}
	}
	path.FXAuthority = strings.Join(authorities, " and ")
}

func (r *Resolver) validate(path *domain.SettlementPath) {
	var issues []string

	if len(path.Nodes) < minPathNodes {
		issues = append(issues, "Settlement path has fewer than 3 nodes. "+
			"Direct entity-to-entity settlement without banking intermediary is not permitted for institutional transactions.")
	}

	coded := 0
	for _, n := range path.Nodes {
		if n.BankCode != "" {
			coded++
		}
	}
	if coded == 0 {
		issues = append(issues, "No SWIFT-capable node in the settlement chain. At least one banking node must have SWIFT access.")
	}

	for i := 0; i+1 < len(path.Nodes); i++ {
		if path.Nodes[i].Role == domain.RoleOriginator && path.Nodes[i+1].Role == domain.RoleBeneficiary {
			issues = append(issues, "Direct entity-to-entity path without banking intermediary detected.")
		}
	}

	var known []string
	for _, n := range path.Nodes {
		if n.Tier != "" && n.Tier != domain.TierUnknown {
			known = append(known, fmt.Sprintf("%s (%s)", n.Name, n.Tier))
		}
	}
	if len(known) > 0 {
		path.ValidationNotes = append(path.ValidationNotes,
			fmt.Sprintf("Chain includes %d known bank(s): %s", len(known), strings.Join(known, ", ")))
	}
	if path.RequiresFX {
		path.ValidationNotes = append(path.ValidationNotes,
			"Cross-border transaction. Consider escrow in freely convertible currency (USD/EUR/GBP) with independent escrow agent.")
	}

	path.ValidationIssues = issues
	path.IsValid = len(issues) == 0
}

func entityName(p domain.Profile) string {
	if p.LegalName == "" {
		return "Unknown"
	}
	return p.LegalName
}

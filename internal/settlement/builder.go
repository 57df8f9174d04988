package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/escrowrail/internal/escrow"
	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/aretw0/escrowrail/internal/scoring"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/registry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	legNodeCount     = 5
	minCodedLegNodes = 2
	minPlanEntities  = 2
	unassignedBank   = "TBD"
)

// Builder composes settlement legs and full escrow plans.
type Builder struct {
	dir      *registry.Directory
	selector *scoring.Selector
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time
	newID    func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the builder logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithHooks registers lifecycle hooks fired when a plan is built.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithClock overrides the plan creation clock.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDGenerator overrides the plan ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		b.newID = gen
	}
}

// NewBuilder creates a Builder over the directory and selector.
func NewBuilder(dir *registry.Directory, selector *scoring.Selector, opts ...Option) *Builder {
	b := &Builder{
		dir:      dir,
		selector: selector,
		logger:   logging.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildLeg emits the fixed five-node rail
// originator -> originator bank -> escrow agent -> beneficiary bank -> beneficiary.
func (b *Builder) BuildLeg(id string, originator, beneficiary domain.Profile, agent domain.EscrowAgentRef, assignments map[string]domain.BankAssignment, currency string) domain.SettlementLeg {
	oName, bName := entityName(originator), entityName(beneficiary)
	oj, bj := originator.BaseJurisdiction(), beneficiary.BaseJurisdiction()

	agentName := agent.Name
	if agentName == "" {
		agentName = escrow.PendingAgentName
	}

	leg := domain.SettlementLeg{
		ID:          id,
		Originator:  oName,
		Beneficiary: bName,
		Currency:    currency,
		RequiresFX:  oj != bj,
		Nodes: []domain.BankNode{
			{Name: oName, Country: oj, Role: domain.RoleOriginator, Tier: domain.TierUnknown},
			b.assignedBankNode(assignments, oName, oj, domain.RoleOriginatorBank),
			b.agentNode(agentName, agent),
			b.assignedBankNode(assignments, bName, bj, domain.RoleBeneficiaryBank),
			{Name: bName, Country: bj, Role: domain.RoleBeneficiary, Tier: domain.TierUnknown},
		},
	}
	for i := range leg.Nodes {
		leg.Nodes[i].Position = i + 1
	}

	coded, agents := 0, 0
	for _, n := range leg.Nodes {
		if n.BankCode != "" {
			coded++
		}
		if n.Role == domain.RoleEscrowAgent {
			agents++
		}
	}

	if coded < minCodedLegNodes {
		leg.Issues = append(leg.Issues, "Fewer than 2 SWIFT-capable nodes in the settlement chain.")
	} else {
		leg.Notes = append(leg.Notes, fmt.Sprintf("%d SWIFT-capable nodes in the chain.", coded))
	}
	if len(leg.Nodes) != legNodeCount {
		leg.Issues = append(leg.Issues, fmt.Sprintf("Settlement leg has %d nodes, expected %d.", len(leg.Nodes), legNodeCount))
	} else {
		leg.Notes = append(leg.Notes, fmt.Sprintf("Valid %d-node chain with escrow intermediary.", len(leg.Nodes)))
	}
	if agents != 1 {
		leg.Issues = append(leg.Issues, "Settlement chain must contain exactly one escrow agent.")
	} else {
		leg.Notes = append(leg.Notes, fmt.Sprintf("Escrow agent: %s [%s].", agentName, agent.BankCode))
	}

	if leg.RequiresFX {
		leg.Notes = append(leg.Notes, fmt.Sprintf("Cross-border leg (%s → %s). FX may be required.", oj, bj))
		for _, j := range []string{oj, bj} {
			if ctl, ok := b.dir.Control(j); ok {
				leg.Notes = append(leg.Notes, fmt.Sprintf("FX Control (%s): %s approval may be required.", j, ctl.Authority))
			}
		}
	}

	leg.IsValid = len(leg.Issues) == 0
	return leg
}

func (b *Builder) assignedBankNode(assignments map[string]domain.BankAssignment, entity, jurisdiction string, role domain.Role) domain.BankNode {
	a, ok := assignments[entity]
	if !ok {
		return domain.BankNode{Name: unassignedBank, Country: jurisdiction, Role: role, Tier: domain.TierUnknown}
	}

	n := domain.BankNode{
		Name:          a.Bank,
		BankCode:      a.BankCode,
		Country:       jurisdiction,
		Role:          role,
		RoutingNumber: a.RoutingNumber,
		AccountRef:    a.Account,
		Tier:          domain.TierUnknown,
	}
	if bank, ok := b.dir.Bank(a.BankCode); ok {
		n.Country = bank.Country
		n.Services = bank.Services
		n.Tier = bank.Tier
	}
	return n
}

func (b *Builder) agentNode(name string, agent domain.EscrowAgentRef) domain.BankNode {
	n := domain.BankNode{
		Name:     name,
		BankCode: agent.BankCode,
		Country:  agent.Country,
		Role:     domain.RoleEscrowAgent,
		Tier:     domain.TierUnknown,
	}
	if bank, ok := b.dir.Bank(agent.BankCode); ok {
		n.RoutingNumber = bank.RoutingNumber
		n.Services = bank.Services
		n.Tier = bank.Tier
	}
	return n
}

// BuildPlan assigns banks, selects the shared escrow agent, builds the terms
// and one leg per (first entity, other entity) pair, then validates the whole.
// Fewer than two entities yields a plan with no legs and one issue.
func (b *Builder) BuildPlan(ctx context.Context, dealName string, profiles []domain.Profile, currency string, amount decimal.Decimal) *domain.EscrowPlan {
	currency = domain.NormalizeCurrency(currency)
	plan := &domain.EscrowPlan{
		ID:              b.newID(),
		DealName:        dealName,
		CreatedAt:       b.now().UTC(),
		Legs:            []domain.SettlementLeg{},
		BankAssignments: map[string]domain.BankAssignment{},
		OverallIssues:   []string{},
		Recommendations: []string{},
	}
	log := b.logger.With("deal", dealName, "plan_id", plan.ID)

	if len(profiles) < minPlanEntities {
		plan.OverallIssues = append(plan.OverallIssues, "Need at least 2 entities to build settlement rails.")
		log.DebugContext(ctx, "plan skipped", "entities", len(profiles))
		b.hooks.EmitPlanBuilt(ctx, plan)
		return plan
	}

	plan.BankAssignments = b.selector.AssignBanks(profiles)

	selection, hasAgent := b.selector.SelectAgent(profiles, currency)
	var agentRef domain.EscrowAgentRef
	if hasAgent {
		agentRef = selection.Ref()
	}
	plan.Terms = escrow.BuildTerms(agentRef, currency, amount)

	primary := profiles[0]
	for i, other := range profiles[1:] {
		leg := b.BuildLeg(fmt.Sprintf("LEG-%02d", i+1), primary, other, agentRef, plan.BankAssignments, plan.Terms.Currency)
		plan.Legs = append(plan.Legs, leg)
	}

	b.validatePlan(plan, profiles, selection, hasAgent)

	log.DebugContext(ctx, "plan built",
		"legs", plan.TotalLegs(),
		"valid_legs", plan.ValidLegs(),
		"agent", plan.Terms.Agent.BankCode,
		"overall_valid", plan.OverallValid)
	b.hooks.EmitPlanBuilt(ctx, plan)
	return plan
}

func (b *Builder) validatePlan(plan *domain.EscrowPlan, profiles []domain.Profile, selection scoring.AgentSelection, hasAgent bool) {
	var issues, recs []string

	invalid := plan.TotalLegs() - plan.ValidLegs()
	if invalid > 0 {
		issues = append(issues, fmt.Sprintf("%d settlement leg(s) have validation issues.", invalid))
	}

	if !domain.IsFreelyConvertible(plan.Terms.Currency) {
		issues = append(issues, fmt.Sprintf("Escrow currency %s is not freely convertible.", plan.Terms.Currency))
	}

	if !hasAgent {
		issues = append(issues, "No escrow agent available in the registry.")
	}

	var unassigned []string
	for _, p := range profiles {
		name := entityName(p)
		if a, ok := plan.BankAssignments[name]; !ok || a.Bank == "" || a.Bank == unassignedBank {
			unassigned = append(unassigned, name)
		}
	}
	if len(unassigned) > 0 {
		issues = append(issues, fmt.Sprintf("%d entity(ies) without bank assignment: %s",
			len(unassigned), strings.Join(unassigned, ", ")))
	}

	seen := make(map[string]bool)
	for _, p := range profiles {
		name := entityName(p)
		a, ok := plan.BankAssignments[name]
		if !ok || a.Source != domain.SourceRecommended || seen[name] {
			continue
		}
		seen[name] = true
		recs = append(recs, fmt.Sprintf("Onboard %s with %s [%s]. %s", name, a.Bank, a.BankCode, a.Rationale))
	}

	recs = append(recs,
		fmt.Sprintf("Execute escrow agreement with %s. Escrow type: %s.", plan.Terms.Agent.Name, plan.Terms.EscrowType),
		"Obtain dual-signature authorization from all designated signatories.",
	)

	for _, leg := range plan.Legs {
		if leg.RequiresFX {
			recs = append(recs, "Engage FX desk for cross-border legs. Confirm freely convertible currency for all settlement.")
			break
		}
	}

	if hasAgent && plan.Terms.Amount.IsPositive() && !selection.Agent.Handles(plan.Terms.Amount) {
		recs = append(recs, fmt.Sprintf(
			"Escrow amount %s %s is outside the capacity of %s (%s - %s). Consider a co-agent or an alternate escrow agent.",
			plan.Terms.Amount.StringFixed(2), plan.Terms.Currency, selection.Agent.Name,
			selection.Agent.MinEscrow.StringFixed(0), selection.Agent.MaxEscrow.StringFixed(0)))
	}

	plan.OverallIssues = append(plan.OverallIssues, issues...)
	plan.Recommendations = append(plan.Recommendations, recs...)
	plan.OverallValid = len(plan.OverallIssues) == 0
}

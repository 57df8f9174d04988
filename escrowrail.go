package escrowrail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/escrowrail/internal/escrow"
	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/aretw0/escrowrail/internal/scoring"
	"github.com/aretw0/escrowrail/internal/settlement"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/aretw0/escrowrail/pkg/registry"
	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/shopspring/decimal"
)

// Engine is the high-level entry point for the escrowrail library.
// It wires the registries, the scorer, the rail builder and the condition resolver.
// An Engine is read-only after New and safe for concurrent use.
type Engine struct {
	data     registry.Data
	weights  scoring.Weights
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	dir      *registry.Directory
	agents   *registry.Agents
	selector *scoring.Selector
	builder  *settlement.Builder
	paths    *settlement.Resolver
	resolver *escrow.Resolver
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the built-in bank directory and escrow agent list.
func WithRegistry(data registry.Data) Option {
	return func(e *Engine) {
		e.data = data
	}
}

// WithWeights overrides the scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock sets the clock stamping new plans.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator sets the plan ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		data:    registry.Default(),
		weights: scoring.DefaultWeights(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.dir = registry.NewDirectory(eng.data)
	eng.agents = registry.NewAgents(eng.data.Agents)
	eng.selector = scoring.New(eng.dir, eng.agents, scoring.WithWeights(eng.weights))
	eng.paths = settlement.NewResolver(eng.dir)

	builderOpts := []settlement.Option{
		settlement.WithLogger(eng.logger),
		settlement.WithHooks(eng.hooks),
	}
	if eng.now != nil {
		builderOpts = append(builderOpts, settlement.WithClock(eng.now))
	}
	if eng.newID != nil {
		builderOpts = append(builderOpts, settlement.WithIDGenerator(eng.newID))
	}
	eng.builder = settlement.NewBuilder(eng.dir, eng.selector, builderOpts...)
	eng.resolver = escrow.NewResolver(escrow.WithLogger(eng.logger), escrow.WithHooks(eng.hooks))
	return eng
}

// Directory returns the bank directory in use.
func (e *Engine) Directory() *registry.Directory {
	return e.dir
}

// Agents returns the escrow agent registry in use.
func (e *Engine) Agents() *registry.Agents {
	return e.agents
}

// Weights returns the scoring weights in use.
func (e *Engine) Weights() scoring.Weights {
	return e.weights
}

// BuildPlan builds the escrow and settlement rail plan for a deal group.
// The first profile is the originator of every leg.
func (e *Engine) BuildPlan(ctx context.Context, dealName string, profiles []domain.Profile, currency string, amount decimal.Decimal) *domain.EscrowPlan {
	return e.builder.BuildPlan(ctx, dealName, profiles, currency, amount)
}

// ResolvePath resolves the banking chain between two entities.
func (e *Engine) ResolvePath(originator, beneficiary domain.Profile, currency string) domain.SettlementPath {
	return e.paths.Resolve(originator, beneficiary, currency)
}

// AssignBanks assigns a settlement bank to every profile that can be served.
func (e *Engine) AssignBanks(profiles []domain.Profile) map[string]domain.BankAssignment {
	return e.selector.AssignBanks(profiles)
}

// SelectAgent picks the best escrow agent for the deal group.
func (e *Engine) SelectAgent(profiles []domain.Profile, currency string) (domain.EscrowAgentRef, bool) {
	sel, ok := e.selector.SelectAgent(profiles, currency)
	if !ok {
		return domain.EscrowAgentRef{}, false
	}
	return sel.Ref(), true
}

// AutoResolve moves PENDING conditions to SATISFIED where evidence supports it
// and returns how many changed.
func (e *Engine) AutoResolve(ctx context.Context, plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) int {
	return e.resolver.AutoSatisfy(ctx, plan, profiles, evidence)
}

// LoadProfiles reads a profile source and splits valid profiles from failed records.
// Failed records are logged and returned so callers can report them.
func (e *Engine) LoadProfiles(ctx context.Context, src ports.ProfileSource) ([]domain.Profile, []schema.LoadResult, error) {
	results, err := src.LoadProfiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	profiles, failed := schema.Split(results)
	for _, f := range failed {
		e.logger.WarnContext(ctx, "entity omitted", "path", f.Path, "err", f.Err)
	}
	return profiles, failed, nil
}

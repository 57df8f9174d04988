/*
Package escrowrail plans how money moves between the participants of an institutional deal.

For a group of entity profiles it assigns each entity a settlement bank, selects one escrow
agent for the whole deal, and builds a five-node settlement rail per counterparty:

	originator -> originator bank -> escrow agent -> beneficiary bank -> beneficiary

Every rail is validated for bank identifier coverage and cross-border currency-control
exposure. The escrow arrangement carries seven release conditions that move through a
small state machine (PENDING -> SATISFIED | WAIVED | FAILED). Evidence files and entity data
can satisfy conditions automatically; waiving or failing a condition is always a manual
sign-off (see pkg/signoff).

# Usage

	eng := escrowrail.New(escrowrail.WithLogger(logger))

	plan := eng.BuildPlan(ctx, "Harbor MTN", profiles, "USD", decimal.NewFromInt(10_000_000))
	eng.AutoResolve(ctx, plan, profiles, evidence)

Profiles come from a ports.ProfileSource (a directory of YAML files or a Loam repository),
evidence from a ports.EvidenceSource. Plans can be persisted through any ports.PlanStore
(memory, file or Redis).

# Architecture

The core (internal/scoring, internal/settlement, internal/escrow) is synchronous and
performs no I/O. Registries (pkg/registry) are injected and read-only after construction.
Adapters under pkg/adapters expose the engine over HTTP, MCP and storage backends, and
cmd/escrowrail provides the command line.
*/
package escrowrail

/*
Package ports defines the driven ports (interfaces) of the escrow rail planner.

These interfaces decouple planning from external implementations, allowing
plans to be persisted in various backends and entity records to be read from
various sources.

# Key Interfaces

  - PlanStore: Persists and loads computed EscrowPlans (memory, file, Redis).
  - DistributedLocker: Coordinates condition sign-off across multiple instances.
  - ProfileSource: Supplies entity records as schema.LoadResult values.
  - EvidenceSource: Supplies the evidence index used by condition auto-resolution.
*/
package ports

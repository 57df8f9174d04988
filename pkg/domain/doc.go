/*
Package domain contains the core models of the escrow and settlement rail planner.

It defines settlement chains, bank assignments, escrow terms and the release
condition state machine. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Profile: The typed record of a deal participant (jurisdiction, banking, signatories).
  - BankNode / SettlementLeg: One hop and one originator-to-beneficiary rail.
  - EscrowCondition: A release condition moving PENDING -> SATISFIED | WAIVED | FAILED.
  - EscrowPlan: The aggregate result with legs, assignments, terms and recommendations.
*/
package domain

package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the settlement rails of a plan.
// Nodes shared between legs (entities, the escrow agent, common banks) are drawn once.
// It applies semantic styling:
// - Entity: (Rounded)
// - Escrow agent: [[Subroutine]]
// - Correspondent: [/Parallelogram/]
// - Bank: [Rectangle]
// Edges of legs that failed validation are dotted and the nodes they touch are flagged.
func GenerateMermaid(plan *domain.EscrowPlan) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if plan == nil {
		return sb.String()
	}

	ids := make(map[string]string)
	var flagged []string
	flaggedSet := make(map[string]bool)

	nodeID := func(n domain.BankNode) string {
		key := nodeKey(n)
		if id, ok := ids[key]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", len(ids)+1)
		ids[key] = id

		opener, closer := "[", "]"
		switch n.Role {
		case domain.RoleOriginator, domain.RoleBeneficiary:
			opener, closer = "(", ")"
		case domain.RoleEscrowAgent:
			opener, closer = "[[", "]]"
		case domain.RoleCorrespondent:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label(n), closer))
		return id
	}

	for _, leg := range plan.Legs {
		var prev string
		for _, n := range leg.Nodes {
			id := nodeID(n)
			if prev != "" {
				arrow := fmt.Sprintf("-- \"%s\" -->", leg.ID)
				if !leg.IsValid {
					arrow = fmt.Sprintf("-. \"%s\" .->", leg.ID)
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", prev, arrow, id))
			}
			if !leg.IsValid && !flaggedSet[id] {
				flaggedSet[id] = true
				flagged = append(flagged, id)
			}
			prev = id
		}
	}

	if id, ok := escrowNodeID(plan, ids); ok {
		sb.WriteString("\n    classDef escrow fill:#ede9fe,stroke:#6d28d9,stroke-width:2px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s escrow;\n", id))
	}
	if len(flagged) > 0 {
		sb.WriteString("\n    classDef flagged fill:#fee2e2,stroke:#b91c1c,stroke-width:2px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s flagged;\n", strings.Join(flagged, ",")))
	}

	return sb.String()
}

func escrowNodeID(plan *domain.EscrowPlan, ids map[string]string) (string, bool) {
	for _, leg := range plan.Legs {
		if n, ok := leg.Node(domain.RoleEscrowAgent); ok {
			id, found := ids[nodeKey(n)]
			return id, found
		}
	}
	return "", false
}

func nodeKey(n domain.BankNode) string {
	switch n.Role {
	case domain.RoleOriginator, domain.RoleBeneficiary:
		return "entity:" + n.Name
	}
	if n.BankCode != "" {
		return "bank:" + n.BankCode
	}
	return "bank:" + n.Name
}

func label(n domain.BankNode) string {
	text := n.Name
	if n.BankCode != "" {
		text = fmt.Sprintf("%s <br/> %s", n.Name, n.BankCode)
	}
	return strings.ReplaceAll(text, "\"", "'")
}

package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
)

// PathMarkdown renders a settlement path as a numbered node table.
func PathMarkdown(path domain.SettlementPath) string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	status := "NEEDS ACTION"
	if path.IsValid {
		status = "VALID"
	}
	w("# Settlement Path")
	w("")
	w("**%s → %s** (%s) **%s**", path.Originator, path.Beneficiary, path.Currency, status)
	w("")
	w("| # | Role | Bank | Code | Country | Tier |")
	w("|---|---|---|---|---|---|")
	for _, n := range path.Nodes {
		w("| %d | %s | %s | %s | %s | %s |", n.Position, n.Role, n.Name, n.BankCode, n.Country, n.Tier)
	}
	w("")

	if path.FXApprovalRequired {
		w("FX approval required by %s.", path.FXAuthority)
		w("")
	}
	for _, issue := range path.ValidationIssues {
		w("- ⚠ %s", issue)
	}
	for _, note := range path.ValidationNotes {
		w("- ℹ %s", note)
	}
	return sb.String()
}

// DiffMarkdown lists the condition changes of a sign-off or resolution run.
func DiffMarkdown(diff *domain.TermsDiff) string {
	if diff.IsEmpty() {
		return "No condition changes.\n"
	}
	var sb strings.Builder
	for _, c := range diff.Changes {
		fmt.Fprintf(&sb, "- **%s** %s → %s", c.ConditionID, c.From, c.To)
		if c.Notes != "" {
			fmt.Fprintf(&sb, ": %s", c.Notes)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

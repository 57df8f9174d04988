// Package report renders escrow plans as Markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/internal/presentation/graph"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
)

// Options tunes the Markdown output.
type Options struct {
	// Diagram appends a Mermaid flowchart of the rails.
	Diagram bool
}

// Markdown renders the plan summary.
func Markdown(plan *domain.EscrowPlan, opts Options) string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	w("# Escrow & Settlement Rail Plan")
	w("")
	w("**%s**", plan.DealName)
	w("")
	if plan.ID != "" {
		w("- Plan: `%s`", plan.ID)
	}
	if !plan.CreatedAt.IsZero() {
		w("- Generated: %s", plan.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	status := "NEEDS ACTION"
	if plan.OverallValid {
		status = "VALID"
	}
	w("- Overall: **%s**", status)
	w("- Settlement legs: %d (%d valid)", plan.TotalLegs(), plan.ValidLegs())
	w("- Total nodes: %d", plan.TotalNodes())
	w("")

	if t := plan.Terms; t != nil {
		w("## Escrow Arrangement")
		w("")
		w("| | |")
		w("|---|---|")
		w("| Agent | %s [%s] |", t.Agent.Name, t.Agent.BankCode)
		w("| Country | %s |", t.Agent.Country)
		if t.RequestedCurrency != "" {
			w("| Currency | %s (requested %s) |", t.Currency, t.RequestedCurrency)
		} else {
			w("| Currency | %s |", t.Currency)
		}
		if t.Amount.IsPositive() {
			w("| Amount | %s %s |", t.Currency, FormatAmount(t.Amount))
		}
		w("| Type | %s |", t.EscrowType)
		w("| Release | %s |", t.ReleaseMechanism)
		w("")
		w("### Conditions (%d/%d met)", t.MetCount(), len(t.Conditions))
		w("")
		for _, c := range t.Conditions {
			mark := " "
			if c.IsMet() {
				mark = "x"
			}
			line := fmt.Sprintf("- [%s] **%s** %s _(%s)_", mark, c.ID, c.Description, c.Status())
			if c.Notes != "" {
				line += " - " + c.Notes
			}
			w("%s", line)
		}
		if len(t.ComplianceNotes) > 0 {
			w("")
			for _, n := range t.ComplianceNotes {
				w("> - %s", n)
			}
		}
		w("")
	}

	if len(plan.BankAssignments) > 0 {
		w("## Entity Bank Assignments")
		w("")
		w("| Entity | Bank | Code | Source |")
		w("|---|---|---|---|")
		for _, name := range plan.AssignedEntities() {
			a := plan.BankAssignments[name]
			w("| %s | %s | %s | %s |", name, a.Bank, a.BankCode, a.Source)
		}
		w("")
	}

	for _, leg := range plan.Legs {
		mark := "valid"
		if !leg.IsValid {
			mark = "invalid"
		}
		w("## %s (%s)", leg.ID, mark)
		w("")
		chain := make([]string, 0, len(leg.Nodes))
		for _, n := range leg.Nodes {
			if n.BankCode != "" {
				chain = append(chain, fmt.Sprintf("%s [%s]", n.Name, n.BankCode))
			} else {
				chain = append(chain, n.Name)
			}
		}
		w("%s", strings.Join(chain, " → "))
		w("")
		fx := "NO"
		if leg.RequiresFX {
			fx = "YES"
		}
		w("Nodes: %d | Currency: %s | FX: %s", leg.NodeCount(), leg.Currency, fx)
		w("")
		for _, issue := range leg.Issues {
			w("- ⚠ %s", issue)
		}
		for _, note := range leg.Notes {
			w("- ℹ %s", note)
		}
		if len(leg.Issues)+len(leg.Notes) > 0 {
			w("")
		}
	}

	if len(plan.OverallIssues) > 0 {
		w("## Outstanding Issues")
		w("")
		for _, issue := range plan.OverallIssues {
			w("- %s", issue)
		}
		w("")
	}

	if len(plan.Recommendations) > 0 {
		w("## Recommendations")
		w("")
		for _, rec := range plan.Recommendations {
			w("- %s", rec)
		}
		w("")
	}

	if opts.Diagram && len(plan.Legs) > 0 {
		w("## Rail Diagram")
		w("")
		w("```mermaid")
		sb.WriteString(graph.GenerateMermaid(plan))
		w("```")
	}

	return sb.String()
}

// FormatAmount renders d with two decimals and thousands separators.
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	out := grouped.String() + "." + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

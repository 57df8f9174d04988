// Package escrow builds escrow terms and resolves their release conditions from evidence.
package escrow

import (
	"fmt"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	EscrowTypeInstitutional  = "institutional"
	ReleaseDualAuthorization = "dual_authorization"
	PendingAgentName         = "TBD"
)

type conditionTemplate struct {
	description string
	category    domain.ConditionCategory
	kind        domain.ConditionKind
	responsible string
}

// standardConditions is the fixed, ordered release checklist.
var standardConditions = []conditionTemplate{
	{"All closing conditions precedent satisfied or waived", domain.CategoryLegal, domain.KindClosingConditions, "Counsel"},
	{"KYC/AML clearance confirmed for all parties by escrow agent", domain.CategoryRegulatory, domain.KindKYCAML, "Escrow Agent / Compliance"},
	{"Dual authorization received from authorized signatories", domain.CategoryLegal, domain.KindDualAuthorization, "Authorized Signatories"},
	{"All legal opinions delivered in final form", domain.CategoryDocumentary, domain.KindLegalOpinions, "Counsel"},
	{"Settlement instructions verified by all counterparties", domain.CategoryFinancial, domain.KindSettlementInstructions, "Operations"},
	{"Funds confirmed deposited in escrow account", domain.CategoryFinancial, domain.KindFundsDeposited, "Escrow Agent"},
	{"OFAC/sanctions screening completed with no adverse findings", domain.CategoryRegulatory, domain.KindSanctionsScreening, "Escrow Agent / Compliance"},
}

// ConditionCount returns the number of standard release conditions.
func ConditionCount() int {
	return len(standardConditions)
}

// BuildTerms generates the escrow arrangement for an agent.
// A currency outside the freely convertible list is replaced by USD with a compliance note.
func BuildTerms(agent domain.EscrowAgentRef, currency string, amount decimal.Decimal) *domain.EscrowTerms {
	currency = domain.NormalizeCurrency(currency)
	if agent.Name == "" {
		agent.Name = PendingAgentName
	}

	terms := &domain.EscrowTerms{
		Agent:            agent,
		Currency:         currency,
		Amount:           amount,
		EscrowType:       EscrowTypeInstitutional,
		ReleaseMechanism: ReleaseDualAuthorization,
	}

	if !domain.IsFreelyConvertible(currency) {
		terms.RequestedCurrency = currency
		terms.Currency = domain.BaseCurrency
		terms.ComplianceNotes = append(terms.ComplianceNotes,
			fmt.Sprintf("WARNING: %s is not freely convertible. Escrow should be denominated in USD/EUR/GBP.", currency),
			"Escrow currency overridden to USD (freely convertible).",
		)
	}

	for i, tpl := range standardConditions {
		terms.Conditions = append(terms.Conditions, domain.NewCondition(
			fmt.Sprintf("ESC-%03d", i+1), tpl.description, tpl.category, tpl.kind, tpl.responsible,
		))
	}

	terms.ComplianceNotes = append(terms.ComplianceNotes,
		fmt.Sprintf("Escrow agent (%s) will hold funds in %s pending release conditions.", agent.Name, terms.Currency),
		"Release requires dual authorization from designated signatories.",
		"Escrow agent performs independent AML/KYC verification.",
	)
	return terms
}

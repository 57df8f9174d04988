package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffConditions(t *testing.T) {
	mk := func() *EscrowTerms {
		return &EscrowTerms{Conditions: []*EscrowCondition{
			NewCondition("ESC-001", "a", CategoryLegal, KindClosingConditions, "Counsel"),
			NewCondition("ESC-002", "b", CategoryRegulatory, KindKYCAML, "Compliance"),
		}}
	}

	before := mk()
	after := mk()
	assert.True(t, DiffConditions("p", before, after).IsEmpty())

	require.NoError(t, after.Conditions[1].Transition(StatusSatisfied, "kyc files", ActorAuto))
	d := DiffConditions("p", before, after)
	require.False(t, d.IsEmpty())
	assert.Equal(t, []ConditionChange{{
		ConditionID: "ESC-002", From: StatusPending, To: StatusSatisfied, Notes: "kyc files",
	}}, d.Changes)

	initial := DiffConditions("p", nil, after)
	assert.Len(t, initial.Changes, 1)
	assert.Nil(t, DiffConditions("p", before, nil))
}

func TestEvidenceIndex(t *testing.T) {
	idx := EvidenceIndex{}
	idx.Add("KYC", "CIS_Issuer.pdf")
	idx.Add("opinions", "opinion_us_draft.docx")
	idx.Add("opinions", "legal_opinion_vn.pdf")

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"cis_issuer.pdf"}, idx.Matching("cis_", "kyc_"))
	assert.Equal(t, []string{"legal_opinion_vn.pdf", "opinion_us_draft.docx"}, idx.Matching("opinion_"))
	assert.Empty(t, EvidenceIndex{}.Matching("x"))
}

func TestSnapshotIsolatesConditions(t *testing.T) {
	terms := &EscrowTerms{Conditions: []*EscrowCondition{
		NewCondition("ESC-001", "All closing conditions satisfied", CategoryDocumentary, KindClosingConditions, "All parties"),
	}}
	before := terms.Snapshot()
	require.NoError(t, terms.Conditions[0].Transition(StatusWaived, "waived at closing", ActorManual))

	assert.Equal(t, StatusPending, before.Conditions[0].Status())
	diff := DiffConditions("p", before, terms)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, StatusWaived, diff.Changes[0].To)
	assert.Nil(t, (*EscrowTerms)(nil).Snapshot())
}

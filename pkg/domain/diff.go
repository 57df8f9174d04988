package domain

// ConditionChange is a single status change between two snapshots of the same terms.
type ConditionChange struct {
	ConditionID string          `json:"condition_id"`
	From        ConditionStatus `json:"from"`
	To          ConditionStatus `json:"to"`
	Notes       string          `json:"notes,omitempty"`
}

// TermsDiff lists the condition changes between two versions of escrow terms.
// It is designed to be serialized to JSON for sign-off audit trails.
type TermsDiff struct {
	PlanID  string            `json:"plan_id"`
	Changes []ConditionChange `json:"changes,omitempty"`
}

// DiffConditions compares the conditions of before and after by ID.
// If before is nil, every non-PENDING condition of after is reported as a change from PENDING.
func DiffConditions(planID string, before, after *EscrowTerms) *TermsDiff {
	if after == nil {
		return nil
	}

	prev := make(map[string]ConditionStatus)
	if before != nil {
		for _, c := range before.Conditions {
			prev[c.ID] = c.Status()
		}
	}

	diff := &TermsDiff{PlanID: planID}
	for _, c := range after.Conditions {
		from, ok := prev[c.ID]
		if !ok {
			from = StatusPending
		}
		if from == c.Status() {
			continue
		}
		diff.Changes = append(diff.Changes, ConditionChange{
			ConditionID: c.ID,
			From:        from,
			To:          c.Status(),
			Notes:       c.Notes,
		})
	}
	return diff
}

// IsEmpty checks if the diff contains any status changes.
func (d *TermsDiff) IsEmpty() bool {
	return d == nil || len(d.Changes) == 0
}

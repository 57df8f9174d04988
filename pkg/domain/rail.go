package domain

// Role is the function a node plays in a settlement chain.
type Role string

const (
	RoleOriginator      Role = "originator"
	RoleOriginatorBank  Role = "originator_bank"
	RolePartnerBank     Role = "partner_bank"
	RoleCorrespondent   Role = "correspondent"
	RoleEscrowAgent     Role = "escrow_agent"
	RoleBeneficiaryBank Role = "beneficiary_bank"
	RoleBeneficiary     Role = "beneficiary"
)

// Tier classifies a bank by systemic importance.
type Tier string

const (
	TierGSIB             Tier = "GSIB"
	TierGloballySystemic Tier = "GLOBAL_SYSTEMICALLY_IMPORTANT"
	TierInternational    Tier = "INTERNATIONAL"
	TierDomesticMajor    Tier = "DOMESTIC_MAJOR"
	TierRegional         Tier = "REGIONAL"
	TierUnknown          Tier = "UNKNOWN"
)

// IsGSIB reports whether the tier denotes a globally systemically important bank.
func (t Tier) IsGSIB() bool {
	return t == TierGSIB || t == TierGloballySystemic
}

// BankNode is a single hop of a settlement chain.
type BankNode struct {
	Position      int      `json:"position"`
	Name          string   `json:"name"`
	BankCode      string   `json:"swift_code,omitempty"`
	Country       string   `json:"country"`
	Role          Role     `json:"role"`
	RoutingNumber string   `json:"aba_routing,omitempty"`
	AccountRef    string   `json:"account_reference,omitempty"`
	Services      []string `json:"services,omitempty"`
	Tier          Tier     `json:"tier,omitempty"`
}

// SettlementPath is the resolved banking chain between two entities.
type SettlementPath struct {
	Originator         string     `json:"originator_entity"`
	Beneficiary        string     `json:"beneficiary_entity"`
	Currency           string     `json:"currency"`
	Nodes              []BankNode `json:"nodes"`
	RequiresFX         bool       `json:"requires_fx"`
	FXApprovalRequired bool       `json:"fx_approval_required"`
	// FXAuthority joins every approving authority with " and ", originator side first.
	FXAuthority        string     `json:"fx_authority,omitempty"`
	IsValid            bool       `json:"is_valid"`
	ValidationIssues   []string   `json:"validation_issues"`
	ValidationNotes    []string   `json:"validation_notes"`
}

// SettlementLeg is one originator -> escrow -> beneficiary rail of a plan.
type SettlementLeg struct {
	ID          string     `json:"leg_id"`
	Originator  string     `json:"originator"`
	Beneficiary string     `json:"beneficiary"`
	Currency    string     `json:"currency"`
	RequiresFX  bool       `json:"requires_fx"`
	Nodes       []BankNode `json:"nodes"`
	IsValid     bool       `json:"is_valid"`
	Issues      []string   `json:"issues"`
	Notes       []string   `json:"notes"`
}

// NodeCount returns the number of nodes in the leg.
func (l SettlementLeg) NodeCount() int {
	return len(l.Nodes)
}

// Node returns the first node with the given role.
func (l SettlementLeg) Node(role Role) (BankNode, bool) {
	for _, n := range l.Nodes {
		if n.Role == role {
			return n, true
		}
	}
	return BankNode{}, false
}

// AssignmentSource tells whether a bank assignment came from the entity or the scorer.
type AssignmentSource string

const (
	SourceExisting    AssignmentSource = "existing"
	SourceRecommended AssignmentSource = "recommended"
)

// BankAssignment is the settlement bank an entity will use in the plan.
type BankAssignment struct {
	Bank          string           `json:"bank"`
	BankCode      string           `json:"swift"`
	RoutingNumber string           `json:"aba"`
	Account       string           `json:"account"`
	Source        AssignmentSource `json:"source"`
	Rationale     string           `json:"rationale,omitempty"`
	Score         int              `json:"score,omitempty"`
}

package scoring

// BankWeights are the additive points used to rank candidate settlement banks.
type BankWeights struct {
	Base          int `yaml:"base" json:"base"`
	GSIB          int `yaml:"gsib" json:"gsib"`
	Settlement    int `yaml:"settlement" json:"settlement"`
	Depository    int `yaml:"depository" json:"depository"`
	SPVCustody    int `yaml:"spv_custody" json:"spv_custody"`
	Custodian     int `yaml:"custodian_match" json:"custodian_match"`
	Escrow        int `yaml:"escrow" json:"escrow"`
	Correspondent int `yaml:"correspondent" json:"correspondent"`
}

// AgentWeights are the additive points used to rank escrow agents.
type AgentWeights struct {
	Base         int `yaml:"base" json:"base"`
	GSIB         int `yaml:"gsib" json:"gsib"`
	Depository   int `yaml:"depository" json:"depository"`
	Trustee      int `yaml:"trustee" json:"trustee"`
	PayingAgent  int `yaml:"paying_agent" json:"paying_agent"`
	Custody      int `yaml:"custody" json:"custody"`
	Jurisdiction int `yaml:"jurisdiction" json:"jurisdiction"`
	Secondary    int `yaml:"secondary_market" json:"secondary_market"`
	Convertible  int `yaml:"convertible" json:"convertible"`
}

// Weights groups both rule sets.
type Weights struct {
	Bank  BankWeights  `yaml:"bank" json:"bank"`
	Agent AgentWeights `yaml:"agent" json:"agent"`
}

// DefaultWeights returns the standard scoring contract.
func DefaultWeights() Weights {
	return Weights{
		Bank: BankWeights{
			Base:          50,
			GSIB:          15,
			Settlement:    10,
			Depository:    10,
			SPVCustody:    5,
			Custodian:     15,
			Escrow:        10,
			Correspondent: 5,
		},
		Agent: AgentWeights{
			Base:         50,
			GSIB:         20,
			Depository:   15,
			Trustee:      10,
			PayingAgent:  10,
			Custody:      5,
			Jurisdiction: 10,
			Secondary:    5,
			Convertible:  5,
		},
	}
}

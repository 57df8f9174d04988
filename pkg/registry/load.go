package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Data is the serializable form of the reference data.
type Data struct {
	Banks             []Bank                     `yaml:"banks"`
	CurrencyControls  map[string]CurrencyControl `yaml:"currency_controls"`
	Candidates        map[string][]Candidate     `yaml:"candidates"`
	DefaultCandidates []Candidate                `yaml:"-"`
	Agents            []Agent                    `yaml:"escrow_agents"`
}

// LoadFile reads reference data from a YAML file.
// Sections missing from the file keep their built-in values.
// A "DEFAULT" entry under candidates replaces the global fallback list.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML reference data over the built-in defaults.
func Parse(raw []byte) (Data, error) {
	var file Data
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Data{}, fmt.Errorf("failed to parse registry: %w", err)
	}

	d := Default()
	if file.Banks != nil {
		d.Banks = file.Banks
	}
	if file.CurrencyControls != nil {
		d.CurrencyControls = file.CurrencyControls
	}
	if file.Candidates != nil {
		if def, ok := file.Candidates[DefaultCandidatesKey]; ok {
			d.DefaultCandidates = def
			delete(file.Candidates, DefaultCandidatesKey)
		}
		d.Candidates = file.Candidates
	}
	if file.Agents != nil {
		d.Agents = file.Agents
	}

	for i, a := range d.Agents {
		if a.Code == "" {
			return Data{}, fmt.Errorf("escrow agent #%d has no code", i+1)
		}
		if !a.MaxEscrow.IsZero() && a.MaxEscrow.LessThan(a.MinEscrow) {
			return Data{}, fmt.Errorf("escrow agent %s: max_escrow below min_escrow", a.Code)
		}
	}
	for i, b := range d.Banks {
		if b.Code == "" {
			return Data{}, fmt.Errorf("bank #%d has no code", i+1)
		}
	}
	return d, nil
}

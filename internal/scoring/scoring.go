// Package scoring ranks settlement banks and escrow agents with additive, traceable rules.
package scoring

import (
	"fmt"
	"strings"

	"github.com/aretw0/escrowrail/pkg/registry"
)

// Rule is one fired scoring rule and the points it contributed.
type Rule struct {
	Name   string `json:"rule"`
	Points int    `json:"points"`
}

// Breakdown is the ordered list of rules that produced a score.
type Breakdown []Rule

// Total sums the points of every rule.
func (b Breakdown) Total() int {
	total := 0
	for _, r := range b {
		total += r.Points
	}
	return total
}

// String renders the breakdown as "base(50), gsib(+15), ...".
func (b Breakdown) String() string {
	parts := make([]string, 0, len(b))
	for i, r := range b {
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%s(%d)", r.Name, r.Points))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%+d)", r.Name, r.Points))
	}
	return strings.Join(parts, ", ")
}

func (b *Breakdown) add(name string, points int, fired bool) {
	if fired && points != 0 {
		*b = append(*b, Rule{Name: name, Points: points})
	}
}

// Selector scores candidates from injected reference data.
type Selector struct {
	dir     *registry.Directory
	agents  *registry.Agents
	weights Weights
}

// Option configures a Selector.
type Option func(*Selector)

// WithWeights overrides the default scoring weights.
func WithWeights(w Weights) Option {
	return func(s *Selector) {
		s.weights = w
	}
}

// New creates a Selector over the given directory and agent roster.
func New(dir *registry.Directory, agents *registry.Agents, opts ...Option) *Selector {
	s := &Selector{
		dir:     dir,
		agents:  agents,
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the weights in use.
func (s *Selector) Weights() Weights {
	return s.weights
}

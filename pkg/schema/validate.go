package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var (
	jurisdictionPattern = regexp.MustCompile(`^[A-Za-z]{2}(-[A-Za-z0-9]{1,3})?$`)
	bankCodePattern     = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	routingPattern      = regexp.MustCompile(`^[0-9]{9}$`)
)

// Decode converts a raw record into a Profile. A top-level "entity" key is unwrapped.
// Scalars are weakly typed so numeric routing or account numbers decode as strings.
func Decode(raw map[string]any) (domain.Profile, error) {
	if inner, ok := raw["entity"].(map[string]any); ok {
		raw = inner
	}

	var p domain.Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Profile{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", ErrMalformedEntity, err)
	}
	return p, nil
}

// ValidateProfile checks the invariants the planner relies on.
// Returns an *AggregateError listing every failure found.
func ValidateProfile(p domain.Profile) error {
	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if strings.TrimSpace(p.LegalName) == "" {
		add("legal_name", "required", nil)
	}
	switch {
	case strings.TrimSpace(p.Jurisdiction) == "":
		add("jurisdiction", "required", nil)
	case !jurisdictionPattern.MatchString(p.Jurisdiction):
		add("jurisdiction", "expected a two-letter country code with an optional subdivision", p.Jurisdiction)
	}
	if code := p.Banking.BankCode; code != "" && !bankCodePattern.MatchString(code) {
		add("banking.swift_code", "expected an 8 or 11 character bank identifier code", code)
	}
	if aba := p.Banking.RoutingNumber; aba != "" && !routingPattern.MatchString(aba) {
		add("banking.aba_routing", "expected 9 digits", aba)
	}
	for i, s := range p.Signatories {
		if strings.TrimSpace(s.Name) == "" {
			add(fmt.Sprintf("signatories[%d].name", i), "required", nil)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Entity: p.LegalName, Errors: errs}
	}
	return nil
}

// Parse decodes and validates a raw record in one step.
func Parse(raw map[string]any) (domain.Profile, error) {
	p, err := Decode(raw)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := ValidateProfile(p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

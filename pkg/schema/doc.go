// Package schema turns loosely structured entity records into validated domain.Profile values.
//
// Entity files are YAML documents with a top-level "entity" key:
//
//	entity:
//	  legal_name: Acme Issuer SPV Ltd
//	  jurisdiction: US-DE
//	  entity_type: special_purpose_vehicle
//	  banking:
//	    settlement_bank: JPMorgan Chase Bank, N.A.
//	    swift_code: CHASUS33
//
// Records are decoded with mapstructure and validated once, here at the boundary,
// so the planning core can assume well-formed input. Every load yields a LoadResult
// so callers can tell an omitted entity from one that failed validation.
package schema

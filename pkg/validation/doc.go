// Package validation provides input validation for the Iron Frontier
// generation API.
//
// This package ensures request parameters are sanitized and validated
// before they reach the world generator and orchestrator, preventing
// malformed or oversized requests from entering the generation pipeline.
//
// # Creating a Validator
//
// Create an InputValidator with a maximum request size limit:
//
//	validator := validation.NewInputValidator(1024 * 1024) // 1MB limit
//
// # Validating Requests
//
// Validate a decoded request body or normalized query-string map before
// processing:
//
//	err := validator.ValidateOperation("generate_world", params, requestSize)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
// # Supported Operations
//
//   - generate_world: optional seed, name, region_count
//   - generate_location_content: location_id, optional count overrides
//   - get_npcs, get_items: location_id
//   - get_dialogue, get_shop: npc_id, location_id
//   - get_structure_state: location_id, hex
//   - clear_cache: no parameters
//
// # Validation Rules
//
// Common validation patterns enforced:
//   - Identifiers (location_id, npc_id): alphanumeric with underscores
//     and hyphens, capped at 256 characters, matching the IDs the
//     generator produces
//   - Hex coordinate keys: "q,r" signed integer pairs
//   - World name: 1-200 characters
//   - Counts: non-negative, capped to prevent pathological generation
//     requests
//
// # Security Features
//
//   - Request size enforcement prevents DoS via large payloads
//   - Type validation prevents type confusion vulnerabilities
//   - Range validation prevents integer overflow and runaway generation
package validation

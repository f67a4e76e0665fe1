// Package pcg provides deterministic procedural world-content generation for
// the Iron Frontier setting: regions, settlements, named NPCs, quest arcs,
// branching dialogue, shop inventories, and combat encounters, all derived
// from a world seed such that identical inputs always yield byte-identical
// output.
//
// # Subpackages
//
//   - pcg/rng: the Mulberry32 deterministic PRNG and derived combinators
//     (dice rolls, weighted picks, shuffles, child-RNG derivation)
//   - pcg/content: the static content registry (name pools, templates,
//     snippets) loaded from built-in defaults and optional YAML overlays
//   - pcg/substitute: the `{{variable}}` template substitution engine
//   - pcg/namegen: place and person name generation
//   - pcg/entities: the generated-content value types shared by every
//     generator and the orchestrator
//   - pcg/npcgen: named NPC generation (personality, backstory, faction)
//   - pcg/questgen: quest arc generation with bound objectives and rewards
//   - pcg/dialoguegen: branching dialogue tree generation
//   - pcg/encountergen: combat encounter and shop inventory generation
//   - pcg/orchestrator: the process-wide location content coordinator
//   - pcg/worldgen: the top-level world/region generator
//   - pcg/metrics: Prometheus instrumentation for the generation pipeline
//
// # Determinism
//
// Every generator derives its random draws from a seed chain rooted at the
// world seed: world -> region -> location -> entity. Two processes given the
// same world seed and the same content registry produce byte-identical
// output, which is what makes save/load, multiplayer synchronization, and
// bug reproduction possible without transmitting generated content over the
// wire.
package pcg

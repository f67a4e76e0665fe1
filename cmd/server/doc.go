// Package main implements the Iron Frontier world-generation server.
//
// It exposes the procedural content pipeline (pkg/pcg) over HTTP and
// WebSocket: world generation, per-location NPC/item/dialogue/shop/quest
// content, structure state, and cache invalidation, instrumented with the
// same middleware, rate limiting, and health-check patterns the rest of
// this codebase uses.
//
// # Architecture
//
//   - Configuration loading and validation (via pkg/config)
//   - Logging setup based on LogLevel
//   - Content registry load (defaults plus optional YAML overlay)
//   - Orchestrator initialization from the configured world seed
//   - Server lifecycle management with graceful shutdown
//   - Signal handling for SIGINT and SIGTERM
//
// # Startup Sequence
//
//  1. Load configuration from IRONFRONTIER_* environment variables
//  2. Configure logging based on LogLevel
//  3. Build the HTTP/WebSocket server and generate the initial world
//  4. Start listening for connections
//  5. Handle shutdown signals gracefully
//
// # Usage
//
// Run the server with default settings:
//
//	./server
//
// Run with a custom port and seed:
//
//	IRONFRONTIER_PORT=9000 IRONFRONTIER_WORLD_SEED=12345 ./server
//
// # Graceful Shutdown
//
// The server handles SIGINT and SIGTERM by stopping new connections,
// closing WebSocket clients, and shutting down within ShutdownTimeout.
package main

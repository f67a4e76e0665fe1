// Package integration combines circuit breaker and retry patterns for comprehensive
// fault tolerance in the Iron Frontier generation service.
//
// This package provides ResilientExecutor which layers retry logic on top of
// circuit breaker protection, giving operations the benefits of both mechanisms:
// automatic retries for transient failures and fast-fail for persistent outages.
//
// # Execution Flow
//
// When executing an operation:
//
//  1. The retrier runs the operation wrapped in the circuit breaker
//  2. If the circuit is open, the attempt fails immediately with
//     ErrCircuitBreakerOpen
//  3. Otherwise the operation runs and the circuit breaker records its
//     success or failure
//  4. The retrier retries every failed attempt, including one rejected by
//     an open circuit, with exponential backoff until MaxAttempts is reached
//
// # Creating Executors
//
// Create a custom executor with specific configuration:
//
//	cbConfig := resilience.CircuitBreakerConfig{
//	    Name:        "my-service",
//	    MaxFailures: 5,
//	    Timeout:     30 * time.Second,
//	}
//	retryConfig := retry.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 100 * time.Millisecond,
//	}
//	executor := integration.NewResilientExecutor(cbConfig, retryConfig)
//
// # Executing Operations
//
// Wrap operations with combined protection:
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callExternalAPI()
//	})
//
// # Pre-configured Executors
//
// Global executors for common operation types:
//
//	// File system operations
//	err := integration.ExecuteFileSystemOperation(ctx, operation)
//
//	// Network/WebSocket operations
//	err := integration.ExecuteNetworkOperation(ctx, operation)
//
//	// Configuration loading
//	err := integration.ExecuteConfigOperation(ctx, operation)
//
// # Ad-hoc Execution
//
// For one-off operations with custom options:
//
//	err := integration.ExecuteResilient(ctx, operation,
//	    integration.ConfigureRetry(retryConfig),
//	    integration.ConfigureCircuitBreaker(cbConfig),
//	)
//
// # Disabling Mechanisms
//
// Run with only one protection mechanism:
//
//	// Retry only, no circuit breaker
//	err := integration.WithCircuitBreakerDisabled(retryConfig).Execute(ctx, operation)
//
//	// Circuit breaker only, no retry
//	err := integration.WithRetryDisabled(cbConfig).Execute(ctx, operation)
//
// # Statistics
//
// Query the circuit breaker's statistics:
//
//	stats := executor.GetStats()
//	// Keys are prefixed with "circuit_breaker_"; no retry metrics are included
//
// # Testing
//
// Reset global executors between tests:
//
//	integration.ResetExecutorsForTesting()
package integration

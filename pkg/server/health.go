package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthStatus represents the overall health status of the server.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckResult is the result of a single health check.
type CheckResult struct {
	Name     string        `json:"name"`
	Status   HealthStatus  `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// HealthResponse is the complete health check response.
type HealthResponse struct {
	Status    HealthStatus  `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Checks    []CheckResult `json:"checks"`
}

// HealthChecker runs health checks against the generation server.
type HealthChecker struct {
	checks map[string]func(context.Context) error
	server *Server
}

// NewHealthChecker creates a health checker wired to server's orchestrator
// and content registry.
func NewHealthChecker(server *Server) *HealthChecker {
	hc := &HealthChecker{
		checks: make(map[string]func(context.Context) error),
		server: server,
	}

	hc.RegisterCheck("orchestrator", hc.checkOrchestrator)
	hc.RegisterCheck("content_registry", hc.checkContentRegistry)

	return hc
}

// RegisterCheck adds a new health check under name.
func (hc *HealthChecker) RegisterCheck(name string, check func(context.Context) error) {
	hc.checks[name] = check
}

func (hc *HealthChecker) checkOrchestrator(ctx context.Context) error {
	if hc.server == nil || hc.server.orchestrator == nil {
		return fmt.Errorf("orchestrator not wired")
	}
	if !hc.server.orchestrator.Initialized() {
		return fmt.Errorf("orchestrator not initialized")
	}
	return nil
}

func (hc *HealthChecker) checkContentRegistry(ctx context.Context) error {
	if hc.server == nil || hc.server.registry == nil {
		return fmt.Errorf("content registry not wired")
	}
	if len(hc.server.registry.NPCTemplates) == 0 {
		return fmt.Errorf("content registry has no NPC templates loaded")
	}
	return nil
}

// RunHealthChecks executes every registered check with a 5-second timeout.
func (hc *HealthChecker) RunHealthChecks(ctx context.Context) HealthResponse {
	start := time.Now()
	response := HealthResponse{
		Timestamp: start,
		Checks:    make([]CheckResult, 0, len(hc.checks)),
	}

	overallStatus := HealthStatusHealthy

	for name, check := range hc.checks {
		checkStart := time.Now()
		result := CheckResult{Name: name, Status: HealthStatusHealthy}

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check(checkCtx)
		cancel()

		result.Duration = time.Since(checkStart)

		if err != nil {
			result.Status = HealthStatusUnhealthy
			result.Error = err.Error()
			overallStatus = HealthStatusUnhealthy

			logrus.WithFields(logrus.Fields{
				"check":    name,
				"duration": result.Duration,
				"error":    err,
			}).Error("health check failed")
		} else {
			logrus.WithFields(logrus.Fields{
				"check":    name,
				"duration": result.Duration,
			}).Debug("health check passed")
		}

		response.Checks = append(response.Checks, result)
	}

	response.Status = overallStatus
	response.Duration = time.Since(start)

	return response
}

// HealthHandler is the HTTP handler for GET /healthz.
func (hc *HealthChecker) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := hc.RunHealthChecks(r.Context())

	httpStatus := http.StatusOK
	if response.Status == HealthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logrus.WithError(err).Error("failed to encode health response")
	}
}

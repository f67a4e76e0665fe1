package config

import (
	"context"
	"os"

	"ironfrontier/pkg/integration"
	"ironfrontier/pkg/pcg/content"
)

// LoadContentOverlay reads a YAML content overlay from filename and merges
// it onto registry, protected by circuit breaker and retry patterns so a
// transient file system issue on a shared content volume doesn't abort
// startup.
func LoadContentOverlay(filename string, registry *content.Registry) error {
	if filename == "" {
		return nil
	}

	ctx := context.Background()
	return integration.ExecuteConfigOperation(ctx, func(ctx context.Context) error {
		if _, err := os.Stat(filename); err != nil {
			return err
		}
		return registry.LoadYAMLOverlay(filename)
	})
}

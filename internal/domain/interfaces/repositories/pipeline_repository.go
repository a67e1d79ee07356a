// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// PipelineRepository defines the interface for loading CI helper settings
type PipelineRepository interface {
	// Load returns the pipeline settings, falling back to defaults for anything unset
	Load(ctx context.Context) (*entities.Pipeline, error)
}

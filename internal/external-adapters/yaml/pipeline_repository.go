package yaml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// DefaultConfigFile is read from the working directory when no --config flag is given
const DefaultConfigFile = "packwright.yml"

// PipelineRepository implements repositories.PipelineRepository using a YAML file
type PipelineRepository struct {
	configPath string
	required   bool
	parser     *PipelineParser
}

// NewPipelineRepository creates a new YAML-based pipeline repository.
// When required is false a missing file yields the default pipeline.
func NewPipelineRepository(configPath string, required bool) *PipelineRepository {
	return &PipelineRepository{
		configPath: configPath,
		required:   required,
		parser:     NewPipelineParser(),
	}
}

// Load reads the configuration file and merges it onto the defaults
func (r *PipelineRepository) Load(_ context.Context) (*entities.Pipeline, error) {
	if r.configPath == "" {
		return entities.DefaultPipeline(), nil
	}

	if _, err := os.Stat(r.configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !r.required {
			return entities.DefaultPipeline(), nil
		}
		return nil, fmt.Errorf("config file not found: %s: %w", r.configPath, err)
	}

	return r.parser.ParseFile(r.configPath)
}

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

// Saver runs the whole export pipeline for one recipe: resolve the
// pictures, prepare the layout, materialize, write to disk.
type Saver struct {
	resolver domain.ImageResolver
	dir      string
	log      *logger.Logger
}

// NewSaver creates a Saver that writes documents into dir.
func NewSaver(resolver domain.ImageResolver, dir string, log *logger.Logger) *Saver {
	return &Saver{resolver: resolver, dir: dir, log: log}
}

// Save exports the recipe and returns the path it was written to.
func (s *Saver) Save(ctx context.Context, r *domain.Recipe) (string, error) {
	bundle := BuildBundle(ctx, s.resolver, r)
	job := Prepare(r, bundle)

	data, err := job.Materialize()
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, job.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	s.log.Info("exported %q to %s (%d pages)", r.Slug, path, job.Pages())
	return path, nil
}

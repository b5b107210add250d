package media

import (
	"context"
	"fmt"
	"sort"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/storage/objectstore"
)

// ImageSource lists every image URL referenced by a stored project.
type ImageSource interface {
	AllImages(ctx context.Context) ([]string, error)
}

// Auditor finds stored objects that no project references. It only reports;
// nothing is deleted.
type Auditor struct {
	store  objectstore.Store
	images ImageSource
	log    zerolog.Logger
}

func NewAuditor(store objectstore.Store, images ImageSource, log zerolog.Logger) *Auditor {
	return &Auditor{store: store, images: images, log: log}
}

func (a *Auditor) Orphans(ctx context.Context) ([]string, error) {
	stored, err := a.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	urls, err := a.images.AllImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, p := range StoragePaths(urls) {
		referenced[p] = struct{}{}
	}

	var orphans []string
	for _, p := range stored {
		if _, ok := referenced[p]; !ok {
			orphans = append(orphans, p)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

// Run performs one audit and logs the result.
func (a *Auditor) Run(ctx context.Context) {
	orphans, err := a.Orphans(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("orphan audit failed")
		return
	}
	if len(orphans) == 0 {
		a.log.Info().Msg("orphan audit: no unreferenced objects")
		return
	}
	a.log.Warn().Int("count", len(orphans)).Strs("paths", orphans).Msg("orphan audit: unreferenced objects in bucket")
}

// Schedule runs the audit on a six-field cron spec (seconds first). The
// returned func stops the scheduler.
func (a *Auditor) Schedule(spec string) (stop func(), err error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() { a.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", spec, err)
	}
	c.Start()
	a.log.Info().Str("schedule", spec).Msg("orphan audit scheduled")
	return func() { <-c.Stop().Done() }, nil
}

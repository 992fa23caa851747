package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vnkhanh/skillplus-backend/repository"
)

const sweepTimeout = 5 * time.Minute

// OrphanSweeper retries deleting objects that failed compensation.
type OrphanSweeper struct {
	orphans repository.OrphanRepository
	store   ObjectStore
	batch   int
	log     zerolog.Logger
}

func NewOrphanSweeper(orphans repository.OrphanRepository, store ObjectStore, batch int, log zerolog.Logger) *OrphanSweeper {
	if batch < 1 {
		batch = 50
	}
	return &OrphanSweeper{orphans: orphans, store: store, batch: batch, log: log}
}

// Sweep makes one pass and returns how many objects were removed.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	pending, err := s.orphans.Pending(ctx, s.batch)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, o := range pending {
		if err := s.store.Remove(ctx, o.Key); err != nil {
			s.log.Warn().Err(err).Str("key", o.Key).Int("attempts", o.Attempts+1).Msg("orphan still not removed")
			if berr := s.orphans.Bump(ctx, o.ID, err.Error()); berr != nil {
				return removed, berr
			}
			continue
		}
		if err := s.orphans.Resolve(ctx, o.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Start schedules Sweep on spec and runs one pass immediately. Stop the
// returned cron on shutdown.
func (s *OrphanSweeper) Start(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, errors.Wrapf(err, "schedule orphan sweep %q", spec)
	}
	c.Start()
	go s.run()

	s.log.Info().Str("spec", spec).Msg("orphan sweeper started")
	return c, nil
}

func (s *OrphanSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("orphan sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int("removed", n).Msg("orphan sweep finished")
	}
}

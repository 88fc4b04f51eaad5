package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSweepSpec = "@every 1m"

// Sweeper periodically drops expired sessions from a store.
type Sweeper struct {
	cron   *cron.Cron
	store  *MemoryStore
	logger *zap.Logger
}

// NewSweeper schedules store.Sweep on spec (standard cron syntax or
// descriptors such as "@every 30s").
func NewSweeper(store *MemoryStore, spec string, logger *zap.Logger) (*Sweeper, error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}

	s := &Sweeper{
		cron:   cron.New(),
		store:  store,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("register session sweep %q: %w", spec, err)
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) runOnce() {
	if n := s.store.Sweep(time.Now()); n > 0 {
		s.logger.Info("expired sessions removed", zap.Int("count", n))
	}
}

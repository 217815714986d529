package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/billetera/billetera/internal/storage"
)

// ExpirySweeper periodically rewrites abandoned pending invitations whose
// deadline has passed to the expired status. Read and respond paths never
// depend on the sweep; they treat expiry as a derived view. The sweep only
// keeps the stored status from drifting forever on invitations nobody
// touches again.
type ExpirySweeper struct {
	store storage.Store
	cron  *cron.Cron
}

// NewExpirySweeper schedules the sweep with the given cron spec
// (e.g. "@hourly"). Call Start to begin and Stop to shut down.
func NewExpirySweeper(store storage.Store, schedule string) (*ExpirySweeper, error) {
	s := &ExpirySweeper{
		store: store,
		cron:  cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running the schedule in its own goroutine.
func (s *ExpirySweeper) Start() {
	s.cron.Start()
}

// Stop cancels future runs and waits for an in-flight sweep to finish.
func (s *ExpirySweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.store.MarkExpiredInvitations(ctx, time.Now())
	if err != nil {
		slog.Error("Expiry sweep failed", "error", err)
		return
	}
	if n > 0 {
		invitationOutcomes.WithLabelValues("expired").Add(float64(n))
		slog.Info("Expiry sweep completed", "expired", n)
	}
}

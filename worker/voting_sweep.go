// Package worker closes expired voting windows in the background. Reads
// already close expired windows lazily, so the sweep only makes closure
// prompt for escrows nobody is looking at.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"

	"github.com/givehub/escrow.api/models"
)

// EscrowCloser exposes the subset of escrow functionality required by the
// sweep.
type EscrowCloser interface {
	ExpiredVotingEscrows(ctx context.Context, now time.Time) ([]models.EscrowResourceDB, error)
	CloseExpiredVoting(ctx context.Context, escrowID string) error
}

// VotingSweep polls for escrows whose voting window has passed and closes
// them.
type VotingSweep struct {
	closer       EscrowCloser
	pollInterval time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewVotingSweep constructs a sweep polling at the supplied interval
func NewVotingSweep(closer EscrowCloser, pollInterval time.Duration) *VotingSweep {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &VotingSweep{
		closer:       closer,
		pollInterval: pollInterval,
	}
}

// Start launches the background sweep
func (s *VotingSweep) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop halts the sweep and waits for any in-flight pass to finish
func (s *VotingSweep) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *VotingSweep) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *VotingSweep) sweep(ctx context.Context) {
	escrows, err := s.closer.ExpiredVotingEscrows(ctx, time.Now())
	if err != nil {
		log.Error(fmt.Errorf("error fetching expired voting escrows: [%v]", err))
		return
	}

	for _, escrow := range escrows {
		if ctx.Err() != nil {
			return
		}
		// a concurrent close of the same escrow is not an error, the
		// conditional update simply finds nothing to do
		if err := s.closer.CloseExpiredVoting(ctx, escrow.ID); err != nil {
			log.Error(fmt.Errorf("error closing voting on escrow: [%v]", err), log.Data{"escrow_id": escrow.ID})
			continue
		}
		log.Info("Closed expired voting window", log.Data{"escrow_id": escrow.ID})
	}
}

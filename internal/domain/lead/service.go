package lead

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ganot/seller-console/internal/remote"
)

// Simulated characteristics of the backing lead API.
const (
	loadLatency       = 800 * time.Millisecond
	updateLatency     = 500 * time.Millisecond
	updateFailureRate = 0.10
)

// Service owns the canonical in-memory lead set.
type Service struct {
	source Source
	remote remote.Remote
	logger *slog.Logger

	mu        sync.Mutex
	leads     []Lead
	loaded    bool
	loadErr   error
	updateSeq uint64
	latest    map[string]uint64
}

// NewService creates a new lead service.
func NewService(source Source, rmt remote.Remote, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		remote: rmt,
		logger: logger,
		latest: make(map[string]uint64),
	}
}

// Load replaces the lead set from the source after the simulated fetch
// latency. Failures are recorded and observable via LoadErr; calling Load
// again retries and replaces state wholesale.
func (s *Service) Load(ctx context.Context) error {
	if err := s.remote.Call(ctx, loadLatency, 0); err != nil {
		return s.failLoad(err)
	}

	leads, err := s.source.FetchLeads(ctx)
	if err != nil {
		return s.failLoad(err)
	}

	s.mu.Lock()
	s.leads = append([]Lead(nil), leads...)
	s.loaded = true
	s.loadErr = nil
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("leads loaded", "count", len(leads))
	}
	return nil
}

func (s *Service) failLoad(cause error) error {
	err := fmt.Errorf("%w: %v", ErrLoadFailed, cause)
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Warn("lead load failed", "error", cause)
	}
	return err
}

// Loaded reports whether a load has completed successfully.
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LoadErr returns the error from the most recent failed load, cleared by the
// next successful one.
func (s *Service) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// All returns a copy of every loaded lead.
func (s *Service) All() []Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Lead(nil), s.leads...)
}

// Filtered returns the loaded leads narrowed and ordered by f.
func (s *Service) Filtered(f Filters) []Lead {
	return FilterAndSort(s.All(), f)
}

// Get returns the lead with the given id.
func (s *Service) Get(id string) (Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return Lead{}, false
}

// Update merges updates into the matching lead once the simulated remote
// call settles; the in-memory set is untouched until then. Returns the
// merged lead, ErrNotFound if the lead vanished mid-flight, ErrSuperseded
// if a newer update for the same lead was issued meanwhile, or the remote's
// transient failure. Overlapping updates per lead are serialized
// latest-wins: a superseded call never commits.
func (s *Service) Update(ctx context.Context, id string, updates Updates) (Lead, error) {
	s.mu.Lock()
	s.updateSeq++
	seq := s.updateSeq
	s.latest[id] = seq
	s.mu.Unlock()

	if err := s.remote.Call(ctx, updateLatency, updateFailureRate); err != nil {
		return Lead{}, fmt.Errorf("updating lead %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[id] != seq {
		return Lead{}, ErrSuperseded
	}
	delete(s.latest, id)
	for i, l := range s.leads {
		if l.ID == id {
			merged := updates.Apply(l)
			s.leads[i] = merged
			if s.logger != nil {
				s.logger.Info("lead updated", "id", id)
			}
			return merged, nil
		}
	}
	return Lead{}, ErrNotFound
}

// Remove drops the lead with the given id. Removing an absent lead is a
// no-op.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.leads {
		if l.ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			if s.logger != nil {
				s.logger.Info("lead removed", "id", id)
			}
			return
		}
	}
}

package opportunity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/seller-console/internal/remote"
	"github.com/ganot/seller-console/internal/store"
)

// StorageKey is the KV entry holding the persisted opportunity list.
const StorageKey = "seller-console-opportunities"

// Simulated characteristics of the backing opportunity API.
const (
	createLatency     = 600 * time.Millisecond
	createFailureRate = 0.05
)

// Service owns the ordered list of created opportunities, most recent first.
type Service struct {
	kv     store.KV
	remote remote.Remote
	logger *slog.Logger

	mu   sync.Mutex
	opps []Opportunity
}

// NewService creates a new opportunity service.
func NewService(kv store.KV, rmt remote.Remote, logger *slog.Logger) *Service {
	return &Service{kv: kv, remote: rmt, logger: logger}
}

// Load hydrates the list persisted by earlier sessions. Nothing stored means
// an empty list.
func (s *Service) Load(ctx context.Context) error {
	var opps []Opportunity
	if _, err := store.Load(ctx, s.kv, StorageKey, &opps); err != nil {
		return err
	}

	s.mu.Lock()
	s.opps = opps
	s.mu.Unlock()
	return nil
}

// All returns a copy of every opportunity, most recent first.
func (s *Service) All() []Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Opportunity(nil), s.opps...)
}

// Create builds a new opportunity for the given lead once the simulated
// remote call settles, prepends it to the list and persists the whole list.
// A nil amount means none was offered.
func (s *Service) Create(ctx context.Context, leadName, leadCompany, leadID string, amount *float64) (Opportunity, error) {
	if err := s.remote.Call(ctx, createLatency, createFailureRate); err != nil {
		return Opportunity{}, fmt.Errorf("creating opportunity: %w", err)
	}

	opp := Opportunity{
		ID:          uuid.NewString(),
		Name:        fmt.Sprintf("%s - %s Opportunity", leadName, leadCompany),
		Stage:       StageQualification,
		Amount:      amount,
		AccountName: leadCompany,
		CreatedAt:   time.Now(),
		LeadID:      leadID,
	}

	s.mu.Lock()
	s.opps = append([]Opportunity{opp}, s.opps...)
	snapshot := append([]Opportunity(nil), s.opps...)
	s.mu.Unlock()

	if err := store.Save(ctx, s.kv, StorageKey, snapshot); err != nil {
		// The opportunity exists for this session either way; it just
		// won't survive a restart.
		if s.logger != nil {
			s.logger.Warn("persisting opportunities", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("opportunity created", "id", opp.ID, "lead_id", leadID)
	}
	return opp, nil
}

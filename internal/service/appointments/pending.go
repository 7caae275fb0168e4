package appointments

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"aihc/backend/internal/domain"
)

// pendingOverride is the payload captured when a conflict is detected,
// retained exactly as assembled until the user proceeds anyway or dismisses.
type pendingOverride struct {
	appt            domain.Appointment
	doctorConflict  bool
	patientConflict bool
	expiresAt       time.Time
}

// overrideStore holds pending overrides keyed by single-use token. Entries
// expire after the configured TTL so abandoned forms do not accumulate.
type overrideStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]pendingOverride
}

func newOverrideStore(ttl time.Duration, now func() time.Time) *overrideStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &overrideStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]pendingOverride),
	}
}

func (s *overrideStore) put(p pendingOverride) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	token := uuid.NewString()
	p.expiresAt = s.now().Add(s.ttl)
	s.entries[token] = p
	return token
}

// take removes and returns the entry; the token is single-use.
func (s *overrideStore) take(token string) (pendingOverride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.entries[token]
	if !ok {
		return pendingOverride{}, false
	}
	delete(s.entries, token)
	if s.now().After(p.expiresAt) {
		return pendingOverride{}, false
	}
	return p, true
}

// restore re-arms a taken entry under its original token, used when the
// commit after a confirmed override fails.
func (s *overrideStore) restore(token string, p pendingOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.expiresAt = s.now().Add(s.ttl)
	s.entries[token] = p
}

func (s *overrideStore) dismiss(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.entries[token]
	if !ok {
		return false
	}
	delete(s.entries, token)
	return !s.now().After(p.expiresAt)
}

func (s *overrideStore) purgeExpiredLocked() {
	now := s.now()
	for token, p := range s.entries {
		if now.After(p.expiresAt) {
			delete(s.entries, token)
		}
	}
}

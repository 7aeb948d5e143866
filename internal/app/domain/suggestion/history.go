package suggestion

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// HistoryCapacity bounds how many prior suggestions are remembered per user.
const HistoryCapacity = 5

// HistoryStore keeps each user's recently accepted suggestions,
// most-recent-first, for anti-repetition. State is process-local: it does
// not survive restarts and is not shared across instances, so exclusion is
// best-effort in scaled deployments. Idle users age out via the cache TTL.
type HistoryStore struct {
	mu      sync.Mutex
	entries *cache.Cache
}

func NewHistoryStore(ttl time.Duration) *HistoryStore {
	return &HistoryStore{
		entries: cache.New(ttl, 2*ttl),
	}
}

// Get returns the user's exclusion list, newest first. Empty for unknown
// users.
func (h *HistoryStore) Get(userID string) []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.getLocked(userID)
}

// Record prepends an accepted suggestion and truncates to capacity. The
// read-modify-write is done under one lock so concurrent requests for the
// same user never lose entries.
func (h *HistoryStore) Record(userID string, entry models.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.getLocked(userID)
	updated := make([]models.HistoryEntry, 0, len(current)+1)
	updated = append(updated, entry)
	updated = append(updated, current...)
	if len(updated) > HistoryCapacity {
		updated = updated[:HistoryCapacity]
	}
	h.entries.Set(userID, updated, cache.DefaultExpiration)
}

func (h *HistoryStore) getLocked(userID string) []models.HistoryEntry {
	if cached, found := h.entries.Get(userID); found {
		if entries, ok := cached.([]models.HistoryEntry); ok {
			return entries
		}
	}
	return nil
}

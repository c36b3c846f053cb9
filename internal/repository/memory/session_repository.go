package memory

import (
	"time"

	"ai-voice-assistant-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps the live state machine of every voice session.
// Sessions are ephemeral: an hour of inactivity and the machine is dropped,
// the browser has to create a fresh session.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(sessionID uuid.UUID, machine *voice.Machine) {
	r.cache.Set(sessionID.String(), machine, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID uuid.UUID) (*voice.Machine, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		// Touch so an active conversation never expires mid-session.
		r.cache.Set(sessionID.String(), x, cache.DefaultExpiration)
		return x.(*voice.Machine), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}

package memory

import (
	"testing"

	"ai-voice-assistant-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()
	machine := voice.NewMachine(voice.NewSession(id), nil, nil, nil, voice.SpeechOptions{}, nil)

	repo.Save(id, machine)

	got, found := repo.Get(id)
	require.True(t, found)
	assert.Same(t, machine, got)
}

func TestSessionRepositoryMissAndDelete(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	_, found := repo.Get(id)
	assert.False(t, found)

	machine := voice.NewMachine(voice.NewSession(id), nil, nil, nil, voice.SpeechOptions{}, nil)
	repo.Save(id, machine)
	repo.Delete(id)

	_, found = repo.Get(id)
	assert.False(t, found)
}

package unit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/match"
)

func TestOtherParty(t *testing.T) {
	homeID := uuid.New()
	awayID := uuid.New()

	m := &domain.Match{
		ID:         uuid.New(),
		HomeTeamID: homeID,
		AwayTeamID: uuidPtr(awayID),
	}

	t.Run("home acting returns away", func(t *testing.T) {
		other, err := match.OtherParty(m, homeID)
		assert.NoError(t, err)
		assert.Equal(t, awayID, other)
	})

	t.Run("away acting returns home", func(t *testing.T) {
		other, err := match.OtherParty(m, awayID)
		assert.NoError(t, err)
		assert.Equal(t, homeID, other)
	})

	t.Run("stranger team is rejected", func(t *testing.T) {
		_, err := match.OtherParty(m, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)
	})

	t.Run("informal opponent has no other party", func(t *testing.T) {
		informal := &domain.Match{
			ID:           uuid.New(),
			HomeTeamID:   homeID,
			AwayTeamName: "Time do Zé",
		}
		_, err := match.OtherParty(informal, homeID)
		assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)
	})
}

func TestMatchStatusIsTerminal(t *testing.T) {
	assert.False(t, domain.MatchPending.IsTerminal())
	assert.False(t, domain.MatchScheduled.IsTerminal())
	assert.True(t, domain.MatchCancelled.IsTerminal())
	assert.True(t, domain.MatchFinished.IsTerminal())
}

func TestMatchStatusIsValid(t *testing.T) {
	assert.True(t, domain.MatchPending.IsValid())
	assert.True(t, domain.MatchFinished.IsValid())
	assert.False(t, domain.MatchStatus("POSTPONED").IsValid())
	assert.False(t, domain.MatchStatus("").IsValid())
}

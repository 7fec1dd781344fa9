package match

import (
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
)

// OtherParty returns the team on the match that is not actingTeamID. It is
// the single place the "who gets notified next" computation lives, instead
// of ad-hoc comparisons at each call site.
func OtherParty(m *domain.Match, actingTeamID uuid.UUID) (uuid.UUID, error) {
	if m.AwayTeamID == nil {
		return uuid.Nil, domain.ErrNotMatchParticipant
	}

	switch actingTeamID {
	case m.HomeTeamID:
		return *m.AwayTeamID, nil
	case *m.AwayTeamID:
		return m.HomeTeamID, nil
	default:
		return uuid.Nil, domain.ErrNotMatchParticipant
	}
}

// isParticipant reports whether teamID is one of the match's two sides.
func isParticipant(m *domain.Match, teamID uuid.UUID) bool {
	if teamID == m.HomeTeamID {
		return true
	}
	return m.AwayTeamID != nil && teamID == *m.AwayTeamID
}

// canRespond reports whether the match is still in a state where the
// invited side may accept, decline or counter-propose. A verified SCHEDULED
// match is settled; CANCELLED and FINISHED are terminal and cannot be
// revived through this workflow.
func canRespond(m *domain.Match) bool {
	switch m.Status {
	case domain.MatchPending:
		return true
	case domain.MatchScheduled:
		return !m.IsVerified
	case domain.MatchCancelled, domain.MatchFinished:
		return false
	default:
		return false
	}
}

// isRespondersTurn reports whether teamID is the side expected to act: the
// one that did not write the most recent proposal.
func isRespondersTurn(m *domain.Match, teamID uuid.UUID) bool {
	return m.UpdatedByTeamID != teamID
}

package crest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/pkg/gemini"
	"pelada-hub/internal/repository"
)

var ErrGeneratorUnavailable = errors.New("crest generator is not configured")

// Service produces crest concept descriptions for a team using the Gemini
// model. The owner picks a style hint and gets back short artwork briefs.
type Service interface {
	GenerateConcept(ctx context.Context, teamID, actorID uuid.UUID, style string) (*Concept, error)
}

type Concept struct {
	TeamID      uuid.UUID `json:"team_id"`
	Style       string    `json:"style"`
	Description string    `json:"description"`
}

type service struct {
	teamRepo repository.TeamRepository
	gemini   *gemini.Client
}

func NewService(teamRepo repository.TeamRepository, geminiClient *gemini.Client) Service {
	return &service{
		teamRepo: teamRepo,
		gemini:   geminiClient,
	}
}

func (s *service) GenerateConcept(ctx context.Context, teamID, actorID uuid.UUID, style string) (*Concept, error) {
	if s.gemini == nil {
		return nil, ErrGeneratorUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	if team.OwnerID != actorID {
		return nil, domain.ErrNotTeamOwner
	}

	if style == "" {
		style = "classic shield"
	}

	description, err := s.gemini.GenerateCrestConcept(ctx, team.Name, team.City, style)
	if err != nil {
		return nil, err
	}

	return &Concept{
		TeamID:      team.ID,
		Style:       style,
		Description: description,
	}, nil
}

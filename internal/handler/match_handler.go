package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/pkg/i18n"
	"pelada-hub/internal/service/match"
)

type MatchHandler struct {
	matchService match.Service
}

func NewMatchHandler(matchService match.Service) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateMatchInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	created, err := h.matchService.Create(c.Context(), userID, input)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *MatchHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid match ID")
	}

	found, err := h.matchService.Get(c.Context(), id)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *MatchHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filter domain.MatchListFilter
	if v := c.Query("team_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return middleware.BadRequest("Invalid team ID")
		}
		filter.TeamID = &id
	}
	if v := c.Query("court_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return middleware.BadRequest("Invalid court ID")
		}
		filter.CourtID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.MatchStatus(v)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid match status")
		}
		filter.Status = &status
	}
	filter.Upcoming = c.Query("upcoming") == "true"

	result, err := h.matchService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MatchHandler) Accept(c *fiber.Ctx) error {
	matchID, teamID, err := h.respondParams(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.matchService.Accept(c.Context(), userID, matchID, teamID)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MatchHandler) Decline(c *fiber.Ctx) error {
	matchID, teamID, err := h.respondParams(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.matchService.Decline(c.Context(), userID, matchID, teamID)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MatchHandler) Counter(c *fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid match ID")
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.CounterProposalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	updated, err := h.matchService.ProposeCounter(c.Context(), userID, matchID, input)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MatchHandler) RecordResult(c *fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid match ID")
	}
	teamID, err := uuid.Parse(c.Query("team_id"))
	if err != nil {
		return middleware.BadRequest("Invalid or missing team ID")
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.RecordResultInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	updated, err := h.matchService.RecordResult(c.Context(), userID, matchID, teamID, input)
	if err != nil {
		return matchError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MatchHandler) respondParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.BadRequest("Invalid match ID")
	}

	var input struct {
		TeamID uuid.UUID `json:"team_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.TeamID == uuid.Nil {
		return uuid.Nil, uuid.Nil, middleware.BadRequest("team_id is required")
	}

	return matchID, input.TeamID, nil
}

func matchError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		return middleware.NotFound("Match not found")
	case errors.Is(err, domain.ErrMatchConflict):
		return middleware.Conflict("Match was modified by someone else, reload and retry")
	case errors.Is(err, domain.ErrInvalidTransition):
		return middleware.UnprocessableEntity("Match status does not allow this action")
	case errors.Is(err, domain.ErrNotMatchParticipant):
		return middleware.Forbidden("Team is not part of this match")
	case errors.Is(err, domain.ErrTeamNotFound):
		return middleware.NotFound("Team not found")
	case errors.Is(err, domain.ErrNotTeamOwner):
		return middleware.Forbidden("Only the team owner may do this")
	default:
		return middleware.NewError(fiber.StatusInternalServerError, i18n.T("error.save_match"))
	}
}

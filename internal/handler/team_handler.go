package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service/crest"
	"pelada-hub/internal/service/team"
)

type TeamHandler struct {
	teamService  team.Service
	crestService crest.Service
}

func NewTeamHandler(teamService team.Service, crestService crest.Service) *TeamHandler {
	return &TeamHandler{
		teamService:  teamService,
		crestService: crestService,
	}
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	created, err := h.teamService.Create(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNameTaken) {
			return middleware.Conflict("Team name already taken")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TeamHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid team ID")
	}

	found, err := h.teamService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return middleware.NotFound("Team not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *TeamHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var city *string
	if v := c.Query("city"); v != "" {
		city = &v
	}

	result, err := h.teamService.List(c.Context(), city, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TeamHandler) GetMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	teams, err := h.teamService.GetMine(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"teams": teams})
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid team ID")
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	updated, err := h.teamService.Update(c.Context(), id, userID, input)
	if err != nil {
		return teamError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid team ID")
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.teamService.Delete(c.Context(), id, userID); err != nil {
		return teamError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Team deleted"})
}

func (h *TeamHandler) UploadCrest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid team ID")
	}
	userID := middleware.GetCurrentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if file.Size > 5*1024*1024 {
		return middleware.BadRequest("File size must be less than 5MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	updated, err := h.teamService.UploadCrest(c.Context(), id, userID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return teamError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TeamHandler) GenerateCrest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid team ID")
	}
	userID := middleware.GetCurrentUserID(c)

	var input struct {
		Style string `json:"style"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return middleware.BadRequest("Invalid request body")
	}

	concept, err := h.crestService.GenerateConcept(c.Context(), id, userID, input.Style)
	if err != nil {
		if errors.Is(err, crest.ErrGeneratorUnavailable) {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Crest generation is not available")
		}
		return teamError(err)
	}
	return c.Status(fiber.StatusOK).JSON(concept)
}

func (h *TeamHandler) Standings(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	standings, err := h.teamService.Standings(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"standings": standings})
}

func teamError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTeamNotFound):
		return middleware.NotFound("Team not found")
	case errors.Is(err, domain.ErrNotTeamOwner):
		return middleware.Forbidden("Only the team owner may do this")
	case errors.Is(err, domain.ErrTeamNameTaken):
		return middleware.Conflict("Team name already taken")
	case errors.Is(err, team.ErrStorageUnavailable):
		return middleware.NewError(fiber.StatusServiceUnavailable, "Crest storage is unavailable")
	default:
		return err
	}
}

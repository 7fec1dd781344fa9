package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service/territory"
)

type CourtHandler struct {
	territoryService territory.Service
}

func NewCourtHandler(territoryService territory.Service) *CourtHandler {
	return &CourtHandler{territoryService: territoryService}
}

func (h *CourtHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateCourtInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	court, err := h.territoryService.CreateCourt(c.Context(), userID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(court)
}

func (h *CourtHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid court ID")
	}

	court, err := h.territoryService.GetCourt(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCourtNotFound) {
			return middleware.NotFound("Court not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(court)
}

func (h *CourtHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var city *string
	if v := c.Query("city"); v != "" {
		city = &v
	}

	result, err := h.territoryService.ListCourts(c.Context(), city, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CourtHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid court ID")
	}

	if err := h.territoryService.DeleteCourt(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCourtNotFound) {
			return middleware.NotFound("Court not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Court deleted"})
}

func (h *CourtHandler) Nearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return middleware.BadRequest("Invalid or missing lat")
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return middleware.BadRequest("Invalid or missing lng")
	}
	radiusKm, _ := strconv.ParseFloat(c.Query("radius_km", "10"), 64)
	limit := c.QueryInt("limit", 20)

	courts, err := h.territoryService.Nearby(c.Context(), lat, lng, radiusKm, limit)
	if err != nil {
		if errors.Is(err, territory.ErrGeoIndexUnavailable) {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Proximity search is not available")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"courts": courts})
}

func (h *CourtHandler) TerritoryMap(c *fiber.Ctx) error {
	standings, err := h.territoryService.Map(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"territories": standings})
}

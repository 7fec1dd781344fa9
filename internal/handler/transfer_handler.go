package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service/transfer"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) CreateListing(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateListingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	listing, err := h.transferService.CreateListing(c.Context(), userID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *TransferHandler) GetListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}

	listing, err := h.transferService.GetListing(c.Context(), id)
	if err != nil {
		return transferError(err)
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

func (h *TransferHandler) ListListings(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var status *domain.ListingStatus
	if v := c.Query("status"); v != "" {
		s := domain.ListingStatus(v)
		if s != domain.ListingOpen && s != domain.ListingClosed {
			return middleware.BadRequest("Invalid listing status")
		}
		status = &s
	}

	result, err := h.transferService.ListListings(c.Context(), status, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TransferHandler) CloseListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.transferService.CloseListing(c.Context(), id, userID); err != nil {
		return transferError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing closed"})
}

func (h *TransferHandler) MakeOffer(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateOfferInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	offer, err := h.transferService.MakeOffer(c.Context(), listingID, userID, input)
	if err != nil {
		return transferError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

func (h *TransferHandler) ListOffers(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid listing ID")
	}
	userID := middleware.GetCurrentUserID(c)

	offers, err := h.transferService.ListOffers(c.Context(), listingID, userID)
	if err != nil {
		return transferError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"offers": offers})
}

func (h *TransferHandler) AcceptOffer(c *fiber.Ctx) error {
	return h.respond(c, true)
}

func (h *TransferHandler) DeclineOffer(c *fiber.Ctx) error {
	return h.respond(c, false)
}

func (h *TransferHandler) respond(c *fiber.Ctx, accept bool) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid offer ID")
	}
	userID := middleware.GetCurrentUserID(c)

	offer, err := h.transferService.RespondToOffer(c.Context(), offerID, userID, accept)
	if err != nil {
		return transferError(err)
	}
	return c.Status(fiber.StatusOK).JSON(offer)
}

func transferError(err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return middleware.NotFound("Listing not found")
	case errors.Is(err, domain.ErrListingClosed):
		return middleware.UnprocessableEntity("Listing is closed")
	case errors.Is(err, domain.ErrOfferNotFound):
		return middleware.NotFound("Offer not found")
	case errors.Is(err, domain.ErrOfferNotPending):
		return middleware.Conflict("Offer is no longer pending")
	case errors.Is(err, domain.ErrNotListingOwner):
		return middleware.Forbidden("Only the listed player may do this")
	case errors.Is(err, domain.ErrTeamNotFound):
		return middleware.NotFound("Team not found")
	case errors.Is(err, domain.ErrNotTeamOwner):
		return middleware.Forbidden("Only the team owner may do this")
	default:
		return err
	}
}

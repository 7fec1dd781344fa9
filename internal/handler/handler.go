package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Team         *TeamHandler
	Match        *MatchHandler
	Notification *NotificationHandler
	Court        *CourtHandler
	Feed         *FeedHandler
	Transfer     *TransferHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Team:         NewTeamHandler(services.Team, services.Crest),
		Match:        NewMatchHandler(services.Match),
		Notification: NewNotificationHandler(services.Notification),
		Court:        NewCourtHandler(services.Territory),
		Feed:         NewFeedHandler(services.Feed),
		Transfer:     NewTransferHandler(services.Transfer),
	}
}

var validate = validator.New()

// validateInput turns the first failed rule into a 422 the client can act on.
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return middleware.UnprocessableEntity(fmt.Sprintf("Field '%s' failed validation rule '%s'", e.Field(), e.Tag()))
		}
		return middleware.UnprocessableEntity("Invalid input")
	}
	return nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

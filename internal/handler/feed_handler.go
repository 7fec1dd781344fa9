package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service/feed"
)

type FeedHandler struct {
	feedService feed.Service
}

func NewFeedHandler(feedService feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// CreatePost accepts either a JSON body or a multipart form with an
// optional "image" file.
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreatePostInput
	var image *feed.PostImage

	if file, err := c.FormFile("image"); err == nil {
		if file.Size > 10*1024*1024 {
			return middleware.BadRequest("Image size must be less than 10MB")
		}
		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		fileReader, err := file.Open()
		if err != nil {
			return middleware.BadRequest("Failed to read image")
		}
		defer fileReader.Close()

		image = &feed.PostImage{
			FileName: file.Filename,
			FileSize: file.Size,
			MimeType: mimeType,
			Reader:   fileReader,
		}

		input.Text = c.FormValue("text")
		if v := c.FormValue("team_id"); v != "" {
			teamID, err := uuid.Parse(v)
			if err != nil {
				return middleware.BadRequest("Invalid team ID")
			}
			input.TeamID = &teamID
		}
	} else if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := validateInput(input); err != nil {
		return err
	}

	post, err := h.feedService.CreatePost(c.Context(), userID, input, image)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return middleware.NotFound("Team not found")
		}
		if errors.Is(err, domain.ErrNotTeamOwner) {
			return middleware.Forbidden("Only the team owner may post as the team")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *FeedHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var teamID *uuid.UUID
	if v := c.Query("team_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return middleware.BadRequest("Invalid team ID")
		}
		teamID = &id
	}

	result, err := h.feedService.List(c.Context(), teamID, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedHandler) GetPost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	post, err := h.feedService.GetPost(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *FeedHandler) DeletePost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.feedService.DeletePost(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		if errors.Is(err, domain.ErrNotPostAuthor) {
			return middleware.Forbidden("Only the author may delete this post")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post deleted"})
}

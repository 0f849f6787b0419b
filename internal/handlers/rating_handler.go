package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/services"
	"github.com/cschleeper/hotel-rating-tool/internal/utils"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

func (h *RatingHandler) Register(app *fiber.App) {
	group := app.Group("hotel/api/v1")
	group.Post("/calculate-rating", h.Calculate)
}

// Calculate rates one property. The calculation itself never fails; a
// missing property object is the only rejectable condition.
func (h *RatingHandler) Calculate(c fiber.Ctx) error {
	var req models.RatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Request body must be JSON with a property object"))
	}

	if req.Property == nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("MISSING_PROPERTY", "Property data is required"))
	}

	rating := h.ratingService.Calculate(req.Property)

	return c.Status(http.StatusOK).JSON(
		utils.CreateSuccessResponse(models.RatingResponse{Rating: rating}))
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/cschleeper/hotel-rating-tool/internal/ai/gemini"
	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/services"
	"github.com/cschleeper/hotel-rating-tool/internal/utils"
)

type PropertyLookupHandler struct {
	lookupService *services.LookupService
}

func NewPropertyLookupHandler(lookupService *services.LookupService) *PropertyLookupHandler {
	return &PropertyLookupHandler{
		lookupService: lookupService,
	}
}

func (h *PropertyLookupHandler) Register(app *fiber.App) {
	group := app.Group("hotel/api/v1")
	group.Post("/property-lookup", h.Lookup)
}

// Lookup resolves a free-text hotel query into a property record via web
// search and photo analysis.
func (h *PropertyLookupHandler) Lookup(c fiber.Ctx) error {
	var req models.LookupRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Request body must be JSON with a query field"))
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("EMPTY_QUERY", "Please provide a hotel name and/or address"))
	}

	property, err := h.lookupService.Lookup(c.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrRateLimited):
			return c.Status(http.StatusTooManyRequests).JSON(
				utils.CreateErrorResponse("RATE_LIMITED", "AI provider rate limit reached, retry after a short wait"))
		case errors.Is(err, gemini.ErrInvalidCredentials):
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("INVALID_CREDENTIALS", "AI provider rejected the configured API key"))
		case errors.Is(err, gemini.ErrResponseExtract):
			return c.Status(http.StatusBadGateway).JSON(
				utils.CreateErrorResponse("EXTRACT_FAILED", "Could not extract property data from the AI response"))
		default:
			return c.Status(http.StatusInternalServerError).JSON(
				utils.CreateErrorResponse("LOOKUP_FAILED", "Failed to look up property"))
		}
	}

	return c.Status(http.StatusOK).JSON(
		utils.CreateSuccessResponse(models.LookupResponse{Property: property}))
}

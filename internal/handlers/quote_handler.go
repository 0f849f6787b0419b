package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/repository"
	"github.com/cschleeper/hotel-rating-tool/internal/services"
	"github.com/cschleeper/hotel-rating-tool/internal/utils"
)

type QuoteHandler struct {
	quoteService  *services.QuoteService
	ratingService *services.RatingService
}

func NewQuoteHandler(quoteService *services.QuoteService, ratingService *services.RatingService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		ratingService: ratingService,
	}
}

func (h *QuoteHandler) Register(app *fiber.App) {
	group := app.Group("hotel/api/v1/quotes")
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.GetByID)
	group.Get("/:id/export", h.Export)
	group.Delete("/:id", h.Delete)
}

// Create rates the submitted property and persists the result as a quote.
func (h *QuoteHandler) Create(c fiber.Ctx) error {
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

	var createdBy *string
	if userID := c.Get("X-User-ID"); userID != "" {
		createdBy = &userID
	}

	quote, err := h.quoteService.Save(c.Context(), req.Property, rating,
		h.ratingService.Profile(), h.ratingService.ConfigVersion(), createdBy)
	if err != nil {
		if errors.Is(err, repository.ErrDatabaseUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("DATABASE_UNAVAILABLE", "Quote storage is temporarily unavailable"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("SAVE_FAILED", "Failed to save quote"))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	state := c.Query("state")

	quotes, err := h.quoteService.List(c.Context(), state, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrDatabaseUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("DATABASE_UNAVAILABLE", "Quote storage is temporarily unavailable"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("LIST_FAILED", "Failed to list quotes"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(quotes, len(quotes), limit, offset))
}

func (h *QuoteHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid quote ID format"))
	}

	quote, err := h.quoteService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDatabaseUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("DATABASE_UNAVAILABLE", "Quote storage is temporarily unavailable"))
		}
		if strings.Contains(err.Error(), "no rows") {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Quote not found"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("GET_FAILED", "Failed to get quote"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid quote ID format"))
	}

	if err := h.quoteService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrDatabaseUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("DATABASE_UNAVAILABLE", "Quote storage is temporarily unavailable"))
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Quote not found"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("DELETE_FAILED", "Failed to delete quote"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": id}))
}

// Export stores the quote document in the export bucket and returns a
// time-limited download URL.
func (h *QuoteHandler) Export(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid quote ID format"))
	}

	url, err := h.quoteService.Export(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportUnavailable):
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("EXPORT_UNAVAILABLE", "Quote export storage is not configured"))
		case errors.Is(err, repository.ErrDatabaseUnavailable):
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("DATABASE_UNAVAILABLE", "Quote storage is temporarily unavailable"))
		case strings.Contains(err.Error(), "no rows"):
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Quote not found"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("EXPORT_FAILED", "Failed to export quote"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{
		"quote_id":     id,
		"download_url": url,
	}))
}

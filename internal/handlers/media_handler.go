package handlers

import (
	"net/http"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MediaHandler handles HTTP requests related to medias
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/medias", h.CreateMedia)
	g.GET("/medias", h.GetMedias)
	g.GET("/medias/:id", h.GetMedia)
	g.PUT("/medias/:id", h.UpdateMedia)
	g.DELETE("/medias/:id", h.DeleteMedia)
}

// CreateMedia registers a social account
func (h *MediaHandler) CreateMedia(c echo.Context) error {
	var req models.CreateOrUpdateMediaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	media, err := h.mediaService.CreateMedia(c.Request().Context(), req.Title, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) GetMedias(c echo.Context) error {
	medias, err := h.mediaService.FindAllMedias(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medias)
}

func (h *MediaHandler) GetMedia(c echo.Context) error {
	id, err := parseID(c, "media")
	if err != nil {
		return err
	}

	media, err := h.mediaService.FindOneMedia(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// UpdateMedia answers with the new title and username only
func (h *MediaHandler) UpdateMedia(c echo.Context) error {
	id, err := parseID(c, "media")
	if err != nil {
		return err
	}

	var req models.CreateOrUpdateMediaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	summary, err := h.mediaService.UpdateMedia(c.Request().Context(), id, req.Title, req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *MediaHandler) DeleteMedia(c echo.Context) error {
	id, err := parseID(c, "media")
	if err != nil {
		return err
	}

	if err := h.mediaService.RemoveMedia(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

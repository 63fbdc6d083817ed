package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/services"
	"github.com/anonto42/publication-scheduler/backend/validators"
	"github.com/labstack/echo/v4"
)

// PublicationHandler handles HTTP requests related to publications
type PublicationHandler struct {
	publicationService *services.PublicationService
}

// NewPublicationHandler creates a new PublicationHandler
func NewPublicationHandler(publicationService *services.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

// RegisterPublicationRoutes registers publication-related routes
func (h *PublicationHandler) RegisterPublicationRoutes(g *echo.Group) {
	g.POST("/publications", h.CreatePublication)
	g.GET("/publications", h.GetPublications)
	g.GET("/publications/:id", h.GetPublication)
	g.PUT("/publications/:id", h.UpdatePublication)
	g.DELETE("/publications/:id", h.DeletePublication)
}

// CreatePublication schedules a post on a media
func (h *PublicationHandler) CreatePublication(c echo.Context) error {
	req, date, err := bindPublication(c)
	if err != nil {
		return err
	}

	publication, err := h.publicationService.CreatePublication(c.Request().Context(), req.MediaID, req.PostID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, publication)
}

// GetPublications lists publications, optionally filtered by ?published=true and ?after=<date>
func (h *PublicationHandler) GetPublications(c echo.Context) error {
	var published bool
	var after *time.Time

	binder := echo.QueryParamsBinder(c)
	binder.ErrorFunc = queryParamError
	err := binder.
		Bool("published", &published).
		CustomFunc("after", func(values []string) []error {
			if values[0] == "" {
				return nil
			}
			value, err := validators.ParseISODate(values[0])
			if err != nil {
				return []error{queryParamError("after", values, nil, err)}
			}
			after = &value
			return nil
		}).
		BindError()
	if err != nil {
		return err
	}

	publications, err := h.publicationService.FindAllPublications(c.Request().Context(), &published, after)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publications)
}

var queryParamMessages = map[string]string{
	"published": "published must be a boolean value",
	"after":     "after must be a valid ISO 8601 date string",
}

// queryParamError is the echo.ValueBinder ErrorFunc for publication filters
func queryParamError(param string, values []string, _ interface{}, internal error) error {
	message, ok := queryParamMessages[param]
	if !ok {
		message = fmt.Sprintf("Invalid query parameter %s", param)
	}
	return echo.NewBindingError(param, values, message, internal)
}

func (h *PublicationHandler) GetPublication(c echo.Context) error {
	id, err := parseID(c, "publication")
	if err != nil {
		return err
	}

	publication, err := h.publicationService.FindOnePublication(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publication)
}

func (h *PublicationHandler) UpdatePublication(c echo.Context) error {
	id, err := parseID(c, "publication")
	if err != nil {
		return err
	}

	req, date, err := bindPublication(c)
	if err != nil {
		return err
	}

	if _, err := h.publicationService.UpdatePublication(c.Request().Context(), id, req.MediaID, req.PostID, date); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PublicationHandler) DeletePublication(c echo.Context) error {
	id, err := parseID(c, "publication")
	if err != nil {
		return err
	}

	if err := h.publicationService.RemovePublication(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindPublication(c echo.Context) (*models.CreateOrUpdatePublicationRequest, time.Time, error) {
	var req models.CreateOrUpdatePublicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, time.Time{}, err
	}

	// already checked by the isodate rule
	date, err := validators.ParseISODate(req.Date)
	if err != nil {
		return nil, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date must be a valid ISO 8601 date string")
	}
	return &req, date, nil
}

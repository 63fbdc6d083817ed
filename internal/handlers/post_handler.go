package handlers

import (
	"net/http"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreateOrUpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), req.Title, req.Text, req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts retrieves every post
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.FindAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}

	post, err := h.postService.FindOnePost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost overwrites an existing post; omitting image clears it
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}

	var req models.CreateOrUpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.postService.UpdatePost(c.Request().Context(), id, req.Title, req.Text, req.Image); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "post")
	if err != nil {
		return err
	}

	if err := h.postService.RemovePost(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

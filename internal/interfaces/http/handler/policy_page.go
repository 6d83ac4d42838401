package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contentapp "github.com/greenclub/backend/internal/application/content"
	"github.com/greenclub/backend/internal/domain/content"
)

// PolicyPageHandler handles policy page endpoints
type PolicyPageHandler struct {
	BaseHandler
	pageService *contentapp.PolicyPageService
}

// NewPolicyPageHandler creates a new PolicyPageHandler
func NewPolicyPageHandler(pageService *contentapp.PolicyPageService) *PolicyPageHandler {
	return &PolicyPageHandler{
		pageService: pageService,
	}
}

// CreatePageRequest represents a request to create a policy page
type CreatePageRequest struct {
	Slug      string `json:"slug" binding:"required,min=1,max=120"`
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Markdown  string `json:"markdown" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// UpdatePageRequest represents a request to update a policy page
type UpdatePageRequest struct {
	Slug      string  `json:"slug" binding:"required,min=1,max=120"`
	Title     string  `json:"title" binding:"required,min=1,max=200"`
	Markdown  *string `json:"markdown"`
	SortOrder *int    `json:"sort_order"`
}

// PageResponse represents a policy page in API responses
type PageResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	SortOrder int       `json:"sort_order"`
	DirKey    string    `json:"dir_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// PageContentResponse represents a policy page together with its content
type PageContentResponse struct {
	PageResponse
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
}

func toPageResponse(p *content.PolicyPage) PageResponse {
	return PageResponse{
		ID:        p.ID.String(),
		Slug:      p.Slug,
		Title:     p.Title,
		Status:    string(p.Status),
		SortOrder: p.SortOrder,
		DirKey:    p.DirKey.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

func toPageContentResponse(pc *contentapp.PageContent) PageContentResponse {
	return PageContentResponse{
		PageResponse: toPageResponse(pc.Page),
		Markdown:     pc.Markdown,
		HTML:         pc.HTML,
	}
}

// Create creates a new draft policy page
func (h *PolicyPageHandler) Create(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.pageService.Create(c.Request.Context(), contentapp.CreatePageInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Markdown:  req.Markdown,
		SortOrder: req.SortOrder,
		ActorID:   actorID,
		IP:        c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPageResponse(page))
}

// GetByID retrieves a policy page with its content
func (h *PolicyPageHandler) GetByID(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid page ID format")
		return
	}

	pc, err := h.pageService.Get(c.Request.Context(), pageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageContentResponse(pc))
}

// GetPublishedBySlug retrieves a published policy page for public display
func (h *PolicyPageHandler) GetPublishedBySlug(c *gin.Context) {
	slug := c.Param("slug")

	pc, err := h.pageService.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageContentResponse(pc))
}

// List retrieves all policy pages
func (h *PolicyPageHandler) List(c *gin.Context) {
	pages, err := h.pageService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageResponses(pages))
}

// ListPublished retrieves published policy pages for public navigation
func (h *PolicyPageHandler) ListPublished(c *gin.Context) {
	pages, err := h.pageService.ListPublished(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageResponses(pages))
}

func toPageResponses(pages []*content.PolicyPage) []PageResponse {
	out := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		out = append(out, toPageResponse(p))
	}
	return out
}

// Update updates a policy page's metadata and optionally its content
func (h *PolicyPageHandler) Update(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid page ID format")
		return
	}

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.pageService.Update(c.Request.Context(), contentapp.UpdatePageInput{
		PageID:    pageID,
		Slug:      req.Slug,
		Title:     req.Title,
		Markdown:  req.Markdown,
		SortOrder: req.SortOrder,
		ActorID:   actorID,
		IP:        c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageResponse(page))
}

// Publish publishes a draft policy page
func (h *PolicyPageHandler) Publish(c *gin.Context) {
	h.transition(c, h.pageService.Publish)
}

// Unpublish returns a policy page to the draft state
func (h *PolicyPageHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.pageService.Unpublish)
}

func (h *PolicyPageHandler) transition(c *gin.Context, op func(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.PolicyPage, error)) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid page ID format")
		return
	}

	page, err := op(c.Request.Context(), pageID, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPageResponse(page))
}

// Delete removes a policy page and its content directory
func (h *PolicyPageHandler) Delete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid page ID format")
		return
	}

	if err := h.pageService.Delete(c.Request.Context(), pageID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

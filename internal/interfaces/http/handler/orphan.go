package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contentapp "github.com/greenclub/backend/internal/application/content"
)

// OrphanHandler handles content store maintenance endpoints
type OrphanHandler struct {
	BaseHandler
	orphanService *contentapp.OrphanService
}

// NewOrphanHandler creates a new OrphanHandler
func NewOrphanHandler(orphanService *contentapp.OrphanService) *OrphanHandler {
	return &OrphanHandler{
		orphanService: orphanService,
	}
}

// RecoverOrphanRequest re-attaches an orphaned directory as a draft post
type RecoverOrphanRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Slug  string `json:"slug" binding:"required,min=1,max=120"`
}

// OrphanReportResponse reconciles the content root against the database
type OrphanReportResponse struct {
	OrphanedPostDirs []string       `json:"orphaned_post_dirs"`
	OrphanedPageDirs []string       `json:"orphaned_page_dirs"`
	MissingPosts     []PostResponse `json:"missing_posts"`
	MissingPages     []PageResponse `json:"missing_pages"`
}

func keysToStrings(keys []uuid.UUID) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

// Report compares directories on disk with database records and reports
// both orphaned directories and records whose content is missing
func (h *OrphanHandler) Report(c *gin.Context) {
	report, err := h.orphanService.Report(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := OrphanReportResponse{
		OrphanedPostDirs: keysToStrings(report.OrphanedPostDirs),
		OrphanedPageDirs: keysToStrings(report.OrphanedPageDirs),
		MissingPosts:     make([]PostResponse, 0, len(report.MissingPosts)),
		MissingPages:     make([]PageResponse, 0, len(report.MissingPages)),
	}
	for _, p := range report.MissingPosts {
		resp.MissingPosts = append(resp.MissingPosts, toPostResponse(p))
	}
	for _, p := range report.MissingPages {
		resp.MissingPages = append(resp.MissingPages, toPageResponse(p))
	}

	h.Success(c, resp)
}

// RecoverPost re-attaches an orphaned post directory as a draft post
func (h *OrphanHandler) RecoverPost(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dirKey, err := uuid.Parse(c.Param("dirKey"))
	if err != nil {
		h.BadRequest(c, "Invalid directory key format")
		return
	}

	var req RecoverOrphanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.orphanService.RecoverPost(c.Request.Context(), contentapp.RecoverOrphanInput{
		DirKey:  dirKey,
		Title:   req.Title,
		Slug:    req.Slug,
		ActorID: actorID,
		IP:      c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPostResponse(post))
}

// PurgePost deletes an orphaned post directory from disk
func (h *OrphanHandler) PurgePost(c *gin.Context) {
	h.purge(c, h.orphanService.PurgePost)
}

// PurgePage deletes an orphaned page directory from disk
func (h *OrphanHandler) PurgePage(c *gin.Context) {
	h.purge(c, h.orphanService.PurgePage)
}

func (h *OrphanHandler) purge(c *gin.Context, op func(ctx context.Context, dirKey, actorID uuid.UUID, ip string) error) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dirKey, err := uuid.Parse(c.Param("dirKey"))
	if err != nil {
		h.BadRequest(c, "Invalid directory key format")
		return
	}

	if err := op(c.Request.Context(), dirKey, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RewritePostHTML re-renders a post's stored HTML from its Markdown
func (h *OrphanHandler) RewritePostHTML(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	if err := h.orphanService.RewritePostHTML(c.Request.Context(), postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RewritePageHTML re-renders a policy page's stored HTML from its Markdown
func (h *OrphanHandler) RewritePageHTML(c *gin.Context) {
	pageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid page ID format")
		return
	}

	if err := h.orphanService.RewritePageHTML(c.Request.Context(), pageID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.Service) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// AuditListFilter binds audit log query parameters
type AuditListFilter struct {
	ActorID      string     `form:"actor_id" binding:"omitempty,uuid"`
	Action       string     `form:"action"`
	ResourceType string     `form:"resource_type"`
	ResourceID   string     `form:"resource_id" binding:"omitempty,uuid"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AuditEntryResponse represents an audit entry in API responses
type AuditEntryResponse struct {
	ID           string    `json:"id"`
	ActorID      *string   `json:"actor_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   *string   `json:"resource_id,omitempty"`
	Detail       string    `json:"detail,omitempty"`
	IP           string    `json:"ip,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAuditEntryResponse(e *audit.Entry) AuditEntryResponse {
	resp := AuditEntryResponse{
		ID:           e.ID.String(),
		Action:       string(e.Action),
		ResourceType: e.ResourceType,
		Detail:       e.Detail,
		IP:           e.IP,
		CreatedAt:    e.CreatedAt,
	}
	if e.ActorID != nil {
		actorID := e.ActorID.String()
		resp.ActorID = &actorID
	}
	if e.ResourceID != nil {
		resourceID := e.ResourceID.String()
		resp.ResourceID = &resourceID
	}
	return resp
}

// List retrieves a paginated slice of the audit log
func (h *AuditHandler) List(c *gin.Context) {
	var q AuditListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := audit.NewFilter()
	if q.ActorID != "" {
		actorID, err := uuid.Parse(q.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return
		}
		filter.ActorID = &actorID
	}
	if q.Action != "" {
		action := audit.Action(q.Action)
		filter.Action = &action
	}
	filter.ResourceType = q.ResourceType
	if q.ResourceID != "" {
		resourceID, err := uuid.Parse(q.ResourceID)
		if err != nil {
			h.BadRequest(c, "Invalid resource ID format")
			return
		}
		filter.ResourceID = &resourceID
	}
	filter.From = q.From
	filter.To = q.To
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	entries, total, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditEntryResponse(e))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a single audit entry
func (h *AuditHandler) GetByID(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid audit entry ID format")
		return
	}

	entry, err := h.auditService.Get(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuditEntryResponse(entry))
}

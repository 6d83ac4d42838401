package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	membershipapp "github.com/greenclub/backend/internal/application/membership"
	"github.com/greenclub/backend/internal/domain/membership"
)

// MemberHandler handles member administration endpoints
type MemberHandler struct {
	BaseHandler
	memberService *membershipapp.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *membershipapp.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// CreateMemberRequest represents a request to create a member
type CreateMemberRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Phone       string `json:"phone" binding:"max=32"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Notes       string `json:"notes" binding:"max=2000"`
	Active      bool   `json:"active"`
}

// UpdateMemberRequest represents a request to update a member's profile
type UpdateMemberRequest struct {
	DisplayName string  `json:"display_name" binding:"required,min=1,max=100"`
	Phone       string  `json:"phone" binding:"max=32"`
	Notes       *string `json:"notes"`
}

// AssignRolesRequest replaces a member's role assignments
type AssignRolesRequest struct {
	RoleIDs []string `json:"role_ids" binding:"required"`
}

// ResetPasswordRequest represents an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// MemberListFilter binds member list query parameters
type MemberListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
	RoleID    string `form:"role_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	RoleIDs     []string   `json:"role_ids"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

func toMemberResponse(m *membership.Member) MemberResponse {
	roleIDs := make([]string, 0, len(m.RoleIDs))
	for _, id := range m.RoleIDs {
		roleIDs = append(roleIDs, id.String())
	}
	return MemberResponse{
		ID:          m.ID.String(),
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Phone:       m.Phone,
		Status:      string(m.Status),
		RoleIDs:     roleIDs,
		LastLoginAt: m.LastLoginAt,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Version:     m.Version,
	}
}

func toMemberResponses(members []*membership.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

// Create registers a new member account
func (h *MemberHandler) Create(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), membershipapp.CreateMemberInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Password:    req.Password,
		Notes:       req.Notes,
		Active:      req.Active,
		ActorID:     actorID,
		IP:          c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMemberResponse(member))
}

// GetByID retrieves a member by ID
func (h *MemberHandler) GetByID(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMemberResponse(member))
}

// List retrieves a paginated list of members
func (h *MemberHandler) List(c *gin.Context) {
	var q MemberListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := membership.NewMemberFilter()
	filter.Keyword = q.Search
	if q.Status != "" {
		status := membership.MemberStatus(q.Status)
		filter.Status = &status
	}
	if q.RoleID != "" {
		roleID, err := uuid.Parse(q.RoleID)
		if err != nil {
			h.BadRequest(c, "Invalid role ID format")
			return
		}
		filter.RoleID = &roleID
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if q.SortBy != "" {
		filter.SortBy = q.SortBy
	}
	if q.SortOrder != "" {
		filter.SortOrder = q.SortOrder
	}

	result, err := h.memberService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toMemberResponses(result.Members), result.Total, filter.Page, filter.PageSize)
}

// Update updates a member's profile
func (h *MemberHandler) Update(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), membershipapp.UpdateMemberInput{
		MemberID:    memberID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Notes:       req.Notes,
		ActorID:     actorID,
		IP:          c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMemberResponse(member))
}

// Activate activates a pending or deactivated member
func (h *MemberHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.memberService.Activate)
}

// Deactivate deactivates a member account
func (h *MemberHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.memberService.Deactivate)
}

// Lock locks a member account pending administrator review
func (h *MemberHandler) Lock(c *gin.Context) {
	h.changeStatus(c, h.memberService.Lock)
}

// Unlock clears a member's login lockout
func (h *MemberHandler) Unlock(c *gin.Context) {
	h.changeStatus(c, h.memberService.Unlock)
}

func (h *MemberHandler) changeStatus(c *gin.Context, op func(ctx context.Context, memberID, actorID uuid.UUID, ip string) error) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	if err := op(c.Request.Context(), memberID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AssignRoles replaces a member's role assignments
func (h *MemberHandler) AssignRoles(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	var req AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	roleIDs := make([]uuid.UUID, 0, len(req.RoleIDs))
	for _, raw := range req.RoleIDs {
		roleID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid role ID format: "+raw)
			return
		}
		roleIDs = append(roleIDs, roleID)
	}

	err = h.memberService.AssignRoles(c.Request.Context(), membershipapp.AssignRolesInput{
		MemberID: memberID,
		RoleIDs:  roleIDs,
		ActorID:  actorID,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ResetPassword sets a new password for a member and invalidates their sessions
func (h *MemberHandler) ResetPassword(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	err = h.memberService.ResetPassword(c.Request.Context(), memberID, req.NewPassword, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a member account
func (h *MemberHandler) Delete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), memberID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

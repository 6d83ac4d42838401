package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clubapp "github.com/greenclub/backend/internal/application/club"
	"github.com/greenclub/backend/internal/domain/club"
)

// PoolHandler handles registration pool endpoints
type PoolHandler struct {
	BaseHandler
	poolService *clubapp.PoolService
}

// NewPoolHandler creates a new PoolHandler
func NewPoolHandler(poolService *clubapp.PoolService) *PoolHandler {
	return &PoolHandler{
		poolService: poolService,
	}
}

// CreatePoolRequest represents a request to open a registration pool
type CreatePoolRequest struct {
	Name       string    `json:"name" binding:"max=200"`
	TargetType string    `json:"target_type" binding:"required,oneof=event booking"`
	TargetID   string    `json:"target_id" binding:"required,uuid"`
	OpensAt    time.Time `json:"opens_at" binding:"required"`
	ClosesAt   time.Time `json:"closes_at" binding:"required"`
	MaxEntries int       `json:"max_entries" binding:"omitempty,min=0"`
}

// UpdatePoolRequest represents a request to update a pool
type UpdatePoolRequest struct {
	Name       string     `json:"name" binding:"max=200"`
	OpensAt    *time.Time `json:"opens_at"`
	ClosesAt   *time.Time `json:"closes_at"`
	MaxEntries *int       `json:"max_entries"`
}

// PoolResponse represents a pool in API responses
type PoolResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	OpensAt    time.Time `json:"opens_at"`
	ClosesAt   time.Time `json:"closes_at"`
	MaxEntries int       `json:"max_entries"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// RegistrationResponse represents a pool entry in API responses
type RegistrationResponse struct {
	ID        string    `json:"id"`
	PoolID    string    `json:"pool_id"`
	MemberID  string    `json:"member_id"`
	Status    string    `json:"status"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterResponse reports the outcome of a registration
type RegisterResponse struct {
	Registration RegistrationResponse `json:"registration"`
	Waitlisted   bool                 `json:"waitlisted"`
}

// WithdrawResponse reports a withdrawal and any promotion it triggered
type WithdrawResponse struct {
	Registration RegistrationResponse  `json:"registration"`
	Promoted     *RegistrationResponse `json:"promoted,omitempty"`
}

func toPoolResponse(p *club.Pool) PoolResponse {
	return PoolResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		TargetType: string(p.TargetType),
		TargetID:   p.TargetID.String(),
		OpensAt:    p.OpensAt,
		ClosesAt:   p.ClosesAt,
		MaxEntries: p.MaxEntries,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

func toRegistrationResponse(r *club.PoolRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID.String(),
		PoolID:    r.PoolID.String(),
		MemberID:  r.MemberID.String(),
		Status:    string(r.Status),
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Create opens a registration pool against an event or booking
func (h *PoolHandler) Create(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	pool, err := h.poolService.Create(c.Request.Context(), clubapp.CreatePoolInput{
		Name:       req.Name,
		TargetType: club.PoolTargetType(req.TargetType),
		TargetID:   targetID,
		OpensAt:    req.OpensAt,
		ClosesAt:   req.ClosesAt,
		MaxEntries: req.MaxEntries,
		ActorID:    actorID,
		IP:         c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPoolResponse(pool))
}

// GetByID retrieves a pool by ID
func (h *PoolHandler) GetByID(c *gin.Context) {
	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	pool, err := h.poolService.Get(c.Request.Context(), poolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPoolResponse(pool))
}

// ListOpen retrieves pools currently accepting registrations
func (h *PoolHandler) ListOpen(c *gin.Context) {
	pools, err := h.poolService.ListOpen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PoolResponse, 0, len(pools))
	for _, p := range pools {
		out = append(out, toPoolResponse(p))
	}
	h.Success(c, out)
}

// Update changes a pool's name, window or entry limit
func (h *PoolHandler) Update(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	var req UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pool, err := h.poolService.Update(c.Request.Context(), clubapp.UpdatePoolInput{
		PoolID:     poolID,
		Name:       req.Name,
		OpensAt:    req.OpensAt,
		ClosesAt:   req.ClosesAt,
		MaxEntries: req.MaxEntries,
		ActorID:    actorID,
		IP:         c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPoolResponse(pool))
}

// Close closes a pool to further registrations
func (h *PoolHandler) Close(c *gin.Context) {
	h.transition(c, h.poolService.Close)
}

// Reopen reopens a closed pool
func (h *PoolHandler) Reopen(c *gin.Context) {
	h.transition(c, h.poolService.Reopen)
}

func (h *PoolHandler) transition(c *gin.Context, op func(ctx context.Context, id, actorID uuid.UUID, ip string) (*club.Pool, error)) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	pool, err := op(c.Request.Context(), poolID, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPoolResponse(pool))
}

// Delete removes a pool and its registrations
func (h *PoolHandler) Delete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	if err := h.poolService.Delete(c.Request.Context(), poolID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Register enters the authenticated member into a pool
func (h *PoolHandler) Register(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	result, err := h.poolService.Register(c.Request.Context(), clubapp.RegisterInput{
		PoolID:   poolID,
		MemberID: memberID,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, RegisterResponse{
		Registration: toRegistrationResponse(result.Registration),
		Waitlisted:   result.Waitlisted,
	})
}

// Withdraw removes the authenticated member's entry and promotes the
// first waitlisted member when a place frees up
func (h *PoolHandler) Withdraw(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	result, err := h.poolService.Withdraw(c.Request.Context(), poolID, memberID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := WithdrawResponse{
		Registration: toRegistrationResponse(result.Registration),
	}
	if result.Promoted != nil {
		promoted := toRegistrationResponse(result.Promoted)
		resp.Promoted = &promoted
	}
	h.Success(c, resp)
}

// ListRegistrations retrieves a pool's entries in position order
func (h *PoolHandler) ListRegistrations(c *gin.Context) {
	poolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pool ID format")
		return
	}

	registrations, err := h.poolService.ListRegistrations(c.Request.Context(), poolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		out = append(out, toRegistrationResponse(r))
	}
	h.Success(c, out)
}

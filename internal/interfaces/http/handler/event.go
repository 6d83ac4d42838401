package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clubapp "github.com/greenclub/backend/internal/application/club"
	"github.com/greenclub/backend/internal/domain/club"
	"github.com/shopspring/decimal"
)

// EventHandler handles club event endpoints
type EventHandler struct {
	BaseHandler
	eventService *clubapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *clubapp.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	Venue       string    `json:"venue" binding:"required,min=1,max=200"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	Capacity    int       `json:"capacity" binding:"omitempty,min=0"`
	Fee         string    `json:"fee"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Venue       string     `json:"venue" binding:"required,min=1,max=200"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    *int       `json:"capacity"`
	Fee         *string    `json:"fee"`
}

// CancelEventRequest carries the reason an event was called off
type CancelEventRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// EventListFilter binds event list query parameters
type EventListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=scheduled cancelled completed"`
	OrganizerID string     `form:"organizer_id" binding:"omitempty,uuid"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Venue        string    `json:"venue"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Capacity     int       `json:"capacity"`
	Fee          string    `json:"fee"`
	Status       string    `json:"status"`
	OrganizerID  string    `json:"organizer_id"`
	CancelReason string    `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

func toEventResponse(e *club.Event) EventResponse {
	return EventResponse{
		ID:           e.ID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Venue:        e.Venue,
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		Capacity:     e.Capacity,
		Fee:          e.Fee.String(),
		Status:       string(e.Status),
		OrganizerID:  e.OrganizerID.String(),
		CancelReason: e.CancelReason,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Version:      e.Version,
	}
}

func toEventResponses(events []*club.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func parseFee(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return fee, true
}

// Create creates a new scheduled event
func (h *EventHandler) Create(c *gin.Context) {
	organizerID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	fee, ok := parseFee(req.Fee)
	if !ok {
		h.BadRequest(c, "Invalid fee format")
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), clubapp.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Fee:         fee,
		OrganizerID: organizerID,
		IP:          c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toEventResponse(event))
}

// GetByID retrieves an event by ID
func (h *EventHandler) GetByID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEventResponse(event))
}

// List retrieves a paginated list of events
func (h *EventHandler) List(c *gin.Context) {
	var q EventListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := club.NewEventFilter()
	filter.Keyword = q.Search
	if q.Status != "" {
		status := club.EventStatus(q.Status)
		filter.Status = &status
	}
	if q.OrganizerID != "" {
		organizerID, err := uuid.Parse(q.OrganizerID)
		if err != nil {
			h.BadRequest(c, "Invalid organizer ID format")
			return
		}
		filter.OrganizerID = &organizerID
	}
	filter.From = q.From
	filter.To = q.To
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	result, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toEventResponses(result.Events), result.Total, result.Page, result.PageSize)
}

// ListUpcoming retrieves the next scheduled events for public display
func (h *EventHandler) ListUpcoming(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := parsePositiveInt(raw, 100); err == nil {
			limit = parsed
		}
	}

	events, err := h.eventService.ListUpcoming(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEventResponses(events))
}

// Update updates an event's details and schedule
func (h *EventHandler) Update(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := clubapp.UpdateEventInput{
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		ActorID:     actorID,
		IP:          c.ClientIP(),
	}
	if req.Fee != nil {
		fee, ok := parseFee(*req.Fee)
		if !ok {
			h.BadRequest(c, "Invalid fee format")
			return
		}
		input.Fee = &fee
	}

	event, err := h.eventService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEventResponse(event))
}

// Cancel cancels a scheduled event and closes any attached pool
func (h *EventHandler) Cancel(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	var req CancelEventRequest
	_ = c.ShouldBindJSON(&req)

	event, err := h.eventService.Cancel(c.Request.Context(), eventID, req.Reason, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEventResponse(event))
}

// Complete marks a past event as completed
func (h *EventHandler) Complete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	event, err := h.eventService.Complete(c.Request.Context(), eventID, actorID, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEventResponse(event))
}

// Delete removes an event
func (h *EventHandler) Delete(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID format")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), eventID, actorID, c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

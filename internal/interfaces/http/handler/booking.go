package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clubapp "github.com/greenclub/backend/internal/application/club"
	"github.com/greenclub/backend/internal/domain/club"
	"github.com/greenclub/backend/internal/interfaces/http/middleware"
)

// BookingHandler handles rink booking endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *clubapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *clubapp.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBookingRequest represents a request to book a rink session
type CreateBookingRequest struct {
	Date        time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	Rink        int       `json:"rink" binding:"required,min=1"`
	StartMinute int       `json:"start_minute" binding:"min=0,max=1439"`
	EndMinute   int       `json:"end_minute" binding:"required,min=1,max=1440"`
	EventID     *string   `json:"event_id" binding:"omitempty,uuid"`
}

// RescheduleBookingRequest represents a request to move a booking
type RescheduleBookingRequest struct {
	Date        time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	Rink        int       `json:"rink" binding:"required,min=1"`
	StartMinute int       `json:"start_minute" binding:"min=0,max=1439"`
	EndMinute   int       `json:"end_minute" binding:"required,min=1,max=1440"`
}

// CancelBookingRequest carries optional cancellation notes
type CancelBookingRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// BookingListFilter binds booking list query parameters
type BookingListFilter struct {
	MemberID string     `form:"member_id" binding:"omitempty,uuid"`
	EventID  string     `form:"event_id" binding:"omitempty,uuid"`
	Status   string     `form:"status" binding:"omitempty,oneof=confirmed cancelled"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Rink     *int       `form:"rink" binding:"omitempty,min=1"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	Date        string    `json:"date"`
	Rink        int       `json:"rink"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	EventID     *string   `json:"event_id,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

func toBookingResponse(b *club.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID.String(),
		MemberID:    b.MemberID.String(),
		Date:        b.Date.Format("2006-01-02"),
		Rink:        b.Rink,
		StartMinute: b.StartMinute,
		EndMinute:   b.EndMinute,
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Version:     b.Version,
	}
	if b.EventID != nil {
		eventID := b.EventID.String()
		resp.EventID = &eventID
	}
	return resp
}

func toBookingResponses(bookings []*club.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

// Create books a rink session for the authenticated member
func (h *BookingHandler) Create(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := clubapp.CreateBookingInput{
		MemberID:    memberID,
		Date:        req.Date,
		Rink:        req.Rink,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		IP:          c.ClientIP(),
	}
	if req.EventID != nil && *req.EventID != "" {
		eventID, err := uuid.Parse(*req.EventID)
		if err != nil {
			h.BadRequest(c, "Invalid event ID format")
			return
		}
		input.EventID = &eventID
	}

	booking, err := h.bookingService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toBookingResponse(booking))
}

// GetByID retrieves a booking by ID
func (h *BookingHandler) GetByID(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(booking))
}

// List retrieves a paginated list of bookings
func (h *BookingHandler) List(c *gin.Context) {
	var q BookingListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := club.NewBookingFilter()
	if q.MemberID != "" {
		memberID, err := uuid.Parse(q.MemberID)
		if err != nil {
			h.BadRequest(c, "Invalid member ID format")
			return
		}
		filter.MemberID = &memberID
	}
	if q.EventID != "" {
		eventID, err := uuid.Parse(q.EventID)
		if err != nil {
			h.BadRequest(c, "Invalid event ID format")
			return
		}
		filter.EventID = &eventID
	}
	if q.Status != "" {
		status := club.BookingStatus(q.Status)
		filter.Status = &status
	}
	filter.From = q.From
	filter.To = q.To
	filter.Rink = q.Rink
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	result, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toBookingResponses(result.Bookings), result.Total, result.Page, result.PageSize)
}

// ListForDate retrieves the rink schedule for a given day
func (h *BookingHandler) ListForDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	bookings, err := h.bookingService.ListForDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponses(bookings))
}

// Reschedule moves a booking to a new slot
func (h *BookingHandler) Reschedule(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	booking, err := h.bookingService.Reschedule(c.Request.Context(), clubapp.RescheduleBookingInput{
		BookingID:      bookingID,
		Date:           req.Date,
		Rink:           req.Rink,
		StartMinute:    req.StartMinute,
		EndMinute:      req.EndMinute,
		ActorID:        actorID,
		ActorIsManager: middleware.HasPermission(c, "bookings:update"),
		IP:             c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(booking))
}

// Cancel cancels a booking
func (h *BookingHandler) Cancel(c *gin.Context) {
	actorID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID format")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.bookingService.Cancel(c.Request.Context(), clubapp.CancelBookingInput{
		BookingID:      bookingID,
		Notes:          req.Notes,
		ActorID:        actorID,
		ActorIsManager: middleware.HasPermission(c, "bookings:cancel"),
		IP:             c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(booking))
}

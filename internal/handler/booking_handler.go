package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/service"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
	"github.com/campus-routine/routine-api/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, req service.CreateBookingRequest) (*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListPublicByDate(ctx context.Context, date string) ([]models.PublicBooking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, req service.UpdateBookingStatusRequest) (*models.Booking, error)
}

// BookingHandler manages booking endpoints. Listing is a single route that
// serves either the condensed public view or, with a valid admin session,
// the full ledger.
type BookingHandler struct {
	service    bookingService
	auth       *service.AuthService
	cookieName string
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(svc bookingService, auth *service.AuthService, cookieName string) *BookingHandler {
	return &BookingHandler{service: svc, auth: auth, cookieName: cookieName}
}

// Create godoc
// @Summary Request a room booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid booking payload"))
		return
	}

	booking, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param public query string false "1 for the condensed public view"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	public := c.Query("public")
	date := c.Query("date")

	if public == "1" || public == "true" {
		if date == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required for the public view"))
			return
		}
		list, err := h.service.ListPublicByDate(c.Request.Context(), date)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, list)
		return
	}

	if !h.hasAdminSession(c) {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if date != "" {
		list, err := h.service.ListByDate(c.Request.Context(), date)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, list)
		return
	}

	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// UpdateStatus godoc
// @Summary Transition a booking's status
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param payload body service.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid status payload"))
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking)
}

// hasAdminSession checks the session cookie (or Bearer header) without
// aborting, since the list route is shared with the public view.
func (h *BookingHandler) hasAdminSession(c *gin.Context) bool {
	if h.auth == nil {
		return false
	}
	token, err := c.Cookie(h.cookieName)
	if err != nil || token == "" {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		return false
	}
	_, err = h.auth.ValidateToken(token)
	return err == nil
}

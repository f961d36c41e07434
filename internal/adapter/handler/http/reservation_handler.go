package http

import (
	"net/http"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
	logger             ports.LoggerPort
	metrics            ports.MetricsPort
}

func NewReservationHandler(
	reservationService *services.ReservationService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		logger:             logger,
		metrics:            metrics,
	}
}

type CreateReservationRequest struct {
	ClientID        string    `json:"client_id,omitempty" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	VehicleID       string    `json:"vehicle_id" binding:"required" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	StartDate       time.Time `json:"start_date" binding:"required" example:"2025-06-01T10:00:00Z"`
	EndDate         time.Time `json:"end_date" binding:"required" example:"2025-06-05T10:00:00Z"`
	PickupLocation  string    `json:"pickup_location" binding:"required" example:"Casablanca Airport"`
	ReturnLocation  string    `json:"return_location,omitempty" example:"Casablanca Airport"`
	DriverAge       *int      `json:"driver_age,omitempty" example:"28"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	LicenseCountry  string    `json:"license_country,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

type UpdateReservationRequest struct {
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          *string    `json:"status,omitempty" example:"validated"`
	PickupLocation  *string    `json:"pickup_location,omitempty"`
	ReturnLocation  *string    `json:"return_location,omitempty"`
	DriverAge       *int       `json:"driver_age,omitempty"`
	LicenseNumber   *string    `json:"license_number,omitempty"`
	LicenseCountry  *string    `json:"license_country,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
}

type ReservationResponse struct {
	ID              uuid.UUID           `json:"id"`
	ClientID        uuid.UUID           `json:"client_id"`
	VehicleID       uuid.UUID           `json:"vehicle_id"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	TotalPrice      float64             `json:"total_price"`
	Status          string              `json:"status"`
	PickupLocation  string              `json:"pickup_location,omitempty"`
	ReturnLocation  string              `json:"return_location,omitempty"`
	DriverAge       *int                `json:"driver_age,omitempty"`
	LicenseNumber   string              `json:"license_number,omitempty"`
	LicenseCountry  string              `json:"license_country,omitempty"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	Client          *domain.UserSummary `json:"client,omitempty"`
	Vehicle         *VehicleResponse    `json:"vehicle,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Count        int                   `json:"count"`
}

func toReservationResponse(reservation *domain.Reservation) ReservationResponse {
	response := ReservationResponse{
		ID:              reservation.ID,
		ClientID:        reservation.ClientID,
		VehicleID:       reservation.VehicleID,
		StartDate:       reservation.StartDate,
		EndDate:         reservation.EndDate,
		TotalPrice:      reservation.TotalPrice,
		Status:          string(reservation.Status),
		PickupLocation:  reservation.PickupLocation,
		ReturnLocation:  reservation.ReturnLocation,
		DriverAge:       reservation.DriverAge,
		LicenseNumber:   reservation.LicenseNumber,
		LicenseCountry:  reservation.LicenseCountry,
		SpecialRequests: reservation.SpecialRequests,
		Client:          reservation.Client,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
	if reservation.Vehicle != nil {
		vehicle := toVehicleResponse(reservation.Vehicle)
		response.Vehicle = &vehicle
	}
	return response
}

// @Summary Create a reservation
// @Description Reserve an available vehicle. Clients book for themselves; admins may book for any client.
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "Reservation data"
// @Success 201 {object} ReservationResponse "Reservation created"
// @Failure 400 {object} errorResponse "Invalid request or vehicle not available"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create reservation", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	clientID := payload.UserID
	if req.ClientID != "" {
		parsed, err := uuid.Parse(req.ClientID)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid client ID")
			return
		}
		if payload.Role != domain.Admin && parsed != payload.UserID {
			h.logger.Warn("Client tried to book for another client", map[string]interface{}{
				"requester_id": payload.UserID.String(),
				"client_id":    req.ClientID,
			})
			newErrorResponse(c, http.StatusForbidden, "Access denied")
			return
		}
		clientID = parsed
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	reservation := &domain.Reservation{
		ClientID:        clientID,
		VehicleID:       vehicleID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupLocation:  req.PickupLocation,
		ReturnLocation:  req.ReturnLocation,
		DriverAge:       req.DriverAge,
		LicenseNumber:   req.LicenseNumber,
		LicenseCountry:  req.LicenseCountry,
		SpecialRequests: req.SpecialRequests,
	}

	created, err := h.reservationService.CreateReservation(c.Request.Context(), reservation)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReservationResponse(created))
}

// @Summary Get a reservation
// @Description Get a reservation by ID. Clients may only read their own.
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} ReservationResponse "Reservation found"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Reservation not found"
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reservation, err := h.reservationService.GetReservationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if payload.Role != domain.Admin && reservation.ClientID != payload.UserID {
		h.logger.Warn("Access denied to reservation", map[string]interface{}{
			"requester_id":   payload.UserID.String(),
			"reservation_id": reservation.ID.String(),
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

// @Summary List reservations
// @Description Admins see every reservation, clients only their own
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ListReservationsResponse "Reservations"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var (
		reservations []*domain.Reservation
		err          error
	)
	if payload.Role == domain.Admin {
		reservations, err = h.reservationService.ListReservations(c.Request.Context())
	} else {
		reservations, err = h.reservationService.ListReservationsByClient(c.Request.Context(), payload.UserID)
	}
	if err != nil {
		h.logger.Error("Failed to list reservations", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list reservations")
		return
	}

	reservationInfos := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		reservationInfos[i] = toReservationResponse(reservation)
	}

	c.JSON(http.StatusOK, ListReservationsResponse{
		Reservations: reservationInfos,
		Count:        len(reservationInfos),
	})
}

// @Summary Update a reservation
// @Description Admins may edit any field; the owning client may only cancel.
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body UpdateReservationRequest true "Fields to update"
// @Success 200 {object} ReservationResponse "Reservation updated"
// @Failure 400 {object} errorResponse "Invalid request or disallowed transition"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Reservation not found"
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	reservationID := c.Param("id")

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if payload.Role != domain.Admin {
		// Clients may only cancel their own reservation.
		existing, err := h.reservationService.GetReservationByID(c.Request.Context(), reservationID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if existing.ClientID != payload.UserID {
			newErrorResponse(c, http.StatusForbidden, "Access denied")
			return
		}
		if req.Status == nil || domain.Status(*req.Status) != domain.StatusCancelled {
			h.logger.Warn("Client attempted non-cancel reservation edit", map[string]interface{}{
				"requester_id":   payload.UserID.String(),
				"reservation_id": reservationID,
			})
			newErrorResponse(c, http.StatusForbidden, "Clients may only cancel their reservations")
			return
		}

		cancelled, err := h.reservationService.UpdateStatus(c.Request.Context(), reservationID, domain.StatusCancelled)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationResponse(cancelled))
		return
	}

	// Status-only admin edits go through the transition path directly.
	if req.Status != nil && req.StartDate == nil && req.EndDate == nil &&
		req.PickupLocation == nil && req.ReturnLocation == nil && req.DriverAge == nil &&
		req.LicenseNumber == nil && req.LicenseCountry == nil && req.SpecialRequests == nil {
		updated, err := h.reservationService.UpdateStatus(c.Request.Context(), reservationID, domain.Status(*req.Status))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationResponse(updated))
		return
	}

	existing, err := h.reservationService.GetReservationByID(c.Request.Context(), reservationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	reservation := *existing
	if req.StartDate != nil {
		reservation.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		reservation.EndDate = *req.EndDate
	}
	if req.Status != nil {
		reservation.Status = domain.Status(*req.Status)
	}
	if req.PickupLocation != nil {
		reservation.PickupLocation = *req.PickupLocation
	}
	if req.ReturnLocation != nil {
		reservation.ReturnLocation = *req.ReturnLocation
	}
	if req.DriverAge != nil {
		reservation.DriverAge = req.DriverAge
	}
	if req.LicenseNumber != nil {
		reservation.LicenseNumber = *req.LicenseNumber
	}
	if req.LicenseCountry != nil {
		reservation.LicenseCountry = *req.LicenseCountry
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}

	updated, err := h.reservationService.UpdateReservation(c.Request.Context(), &reservation)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReservationResponse(updated))
}

// @Summary Delete a reservation
// @Description Remove a reservation and release its vehicle (admin only)
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} MessageResponse "Reservation deleted"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "Reservation not found"
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if payload.Role != domain.Admin {
		newErrorResponse(c, http.StatusForbidden, "Admin access required")
		return
	}

	if err := h.reservationService.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Reservation deleted successfully"})
}

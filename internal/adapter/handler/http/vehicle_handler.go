package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImageSize caps uploaded vehicle photos at 5 MB.
const maxImageSize = 5 << 20

type VehicleHandler struct {
	vehicleService *services.VehicleService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

func NewVehicleHandler(
	vehicleService *services.VehicleService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
		metrics:        metrics,
	}
}

type VehicleResponse struct {
	ID          uuid.UUID        `json:"id"`
	Make        string           `json:"make"`
	Model       string           `json:"model"`
	Year        int              `json:"year"`
	PricePerDay float64          `json:"price_per_day"`
	PlateNumber string           `json:"plate_number"`
	Color       string           `json:"color,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Category    *domain.Category `json:"category,omitempty"`
	Image       string           `json:"image"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Count    int               `json:"count"`
}

type VehicleStatsResponse struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Rented      int `json:"rented"`
	Maintenance int `json:"maintenance"`
}

func toVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          vehicle.ID,
		Make:        vehicle.Make,
		Model:       vehicle.Model,
		Year:        vehicle.Year,
		PricePerDay: vehicle.PricePerDay,
		PlateNumber: vehicle.PlateNumber,
		Color:       vehicle.Color,
		CategoryID:  vehicle.CategoryID,
		Category:    vehicle.Category,
		Image:       vehicle.Image,
		Status:      string(vehicle.Status),
		CreatedAt:   vehicle.CreatedAt,
		UpdatedAt:   vehicle.UpdatedAt,
	}
}

// readImageDataURI reads the multipart image field and returns it as a
// base64 data URI. Empty string with nil error means no file was sent.
func readImageDataURI(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", int64(maxImageSize))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mimeType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// vehicleFromForm collects the multipart fields shared by create and update.
func vehicleFromForm(c *gin.Context) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		Make:        c.PostForm("make"),
		Model:       c.PostForm("model"),
		PlateNumber: c.PostForm("plate_number"),
		Color:       c.PostForm("color"),
		Status:      domain.Availability(c.PostForm("status")),
	}

	if yearStr := c.PostForm("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", yearStr)
		}
		vehicle.Year = year
	}
	if priceStr := c.PostForm("price_per_day"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price_per_day %q", priceStr)
		}
		vehicle.PricePerDay = price
	}
	if categoryStr := c.PostForm("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id %q", categoryStr)
		}
		vehicle.CategoryID = &categoryID
	}

	image, err := readImageDataURI(c)
	if err != nil {
		return nil, err
	}
	vehicle.Image = image

	return vehicle, nil
}

// @Summary Create a vehicle
// @Description Add a vehicle to the fleet (admin only, multipart with image)
// @Tags vehicles
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param make formData string true "Manufacturer"
// @Param model formData string true "Model"
// @Param year formData int true "Year"
// @Param price_per_day formData number true "Daily rate"
// @Param plate_number formData string true "Plate number"
// @Param color formData string false "Color"
// @Param category_id formData string false "Category ID"
// @Param image formData file true "Vehicle photo"
// @Success 201 {object} VehicleResponse "Vehicle created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	vehicle, err := vehicleFromForm(c)
	if err != nil {
		h.logger.Error("Failed to parse vehicle form", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.vehicleService.CreateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id": created.ID,
		"plate":      created.PlateNumber,
	})

	c.JSON(http.StatusCreated, toVehicleResponse(created))
}

// @Summary Get a vehicle
// @Description Get a vehicle by ID with its category
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} VehicleResponse "Vehicle found"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// @Summary List vehicles
// @Description List the whole fleet
// @Tags vehicles
// @Produce json
// @Success 200 {object} ListVehiclesResponse "All vehicles"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	vehicleInfos := make([]VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		vehicleInfos[i] = toVehicleResponse(vehicle)
	}

	c.JSON(http.StatusOK, ListVehiclesResponse{
		Vehicles: vehicleInfos,
		Count:    len(vehicleInfos),
	})
}

// @Summary Fleet statistics
// @Description Vehicle counts per availability state
// @Tags vehicles
// @Produce json
// @Success 200 {object} VehicleStatsResponse "Fleet stats"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /vehicles/stats [get]
func (h *VehicleHandler) GetVehicleStats(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	stats, err := h.vehicleService.GetVehicleStats(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to get vehicle stats")
		return
	}

	c.JSON(http.StatusOK, VehicleStatsResponse{
		Total:       stats.Total,
		Available:   stats.Available,
		Rented:      stats.Rented,
		Maintenance: stats.Maintenance,
	})
}

// @Summary Update a vehicle
// @Description Update vehicle fields (admin only, multipart; empty fields keep current values)
// @Tags vehicles
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param image formData file false "Replacement photo"
// @Success 200 {object} VehicleResponse "Vehicle updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := vehicleFromForm(c)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	vehicle.ID = vehicleID

	updated, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(updated))
}

// @Summary Delete a vehicle
// @Description Remove a vehicle from the fleet (admin only)
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} MessageResponse "Vehicle deleted"
// @Failure 403 {object} errorResponse "Admin access required"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Vehicle deleted successfully"})
}

package booking

import (
	"errors"
	"net/http"
	"strconv"

	"petcare/internal/pkg/response"
	"petcare/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.SlotAvailability)
	rg.GET("/catalog", h.ListCatalog)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/registrations", h.CreateRegistration)
	rg.GET("/registrations", h.ListMyRegistrations)
	rg.GET("/registrations/:id", h.GetRegistration)
}

func (h *Handler) CreateRegistration(c *gin.Context) {
	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request fields", details)
		return
	}

	ownerID := c.GetInt64("owner_id")
	reg, err := h.service.CreateRegistration(c.Request.Context(), ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrSlotFull):
			response.Error(c, http.StatusConflict, "SLOT_FULL", "The selected slot is fully booked")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create registration")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"registration": reg})
}

func (h *Handler) ListMyRegistrations(c *gin.Context) {
	ownerID := c.GetInt64("owner_id")

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	regs, err := h.service.ListMyRegistrations(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list registrations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registrations": regs})
}

func (h *Handler) GetRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid registration ID")
		return
	}

	reg, err := h.service.GetOwnedRegistration(c.Request.Context(), id, c.GetInt64("owner_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Registration not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load registration")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registration": reg})
}

func (h *Handler) SlotAvailability(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.service.SlotAvailability(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or missing date")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *Handler) ListCatalog(c *gin.Context) {
	items, err := h.service.ListCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load catalog")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

package payment

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"petcare/internal/pkg/reftoken"
	"petcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	landingURL string
}

func NewHandler(service *Service, landingURL string) *Handler {
	return &Handler{service: service, landingURL: landingURL}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/registrations/:id/payment-link", h.PaymentLink)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/callback", h.Callback)
}

// PaymentLink redirects the owner's browser to the signed gateway URL.
func (h *Handler) PaymentLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid registration ID")
		return
	}

	payURL, err := h.service.BuildPaymentURL(c.Request.Context(), id, c.GetInt64("owner_id"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Registration not found")
		case errors.Is(err, ErrAlreadySettled):
			response.Error(c, http.StatusConflict, "ALREADY_SETTLED", "Registration is already paid")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build payment link")
		}
		return
	}

	c.Redirect(http.StatusFound, payURL)
}

// Callback is invoked by the gateway, not by an interactive caller: failures
// before the outcome branch answer with a short plaintext diagnostic, every
// reconciled outcome redirects the browser to the landing page.
func (h *Handler) Callback(c *gin.Context) {
	res, err := h.service.HandleReturn(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		switch {
		case errors.Is(err, ErrIntegrity):
			c.String(http.StatusForbidden, "integrity check failed")
		case errors.Is(err, reftoken.ErrDecode):
			c.String(http.StatusBadRequest, "cannot resolve order")
		case errors.Is(err, ErrNotFound):
			c.String(http.StatusNotFound, "order not found")
		default:
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	landing, perr := url.Parse(h.landingURL)
	if perr != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	q := landing.Query()
	q.Set("result", res.Outcome)
	landing.RawQuery = q.Encode()

	c.Redirect(http.StatusFound, landing.String())
}

package httpt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"feast-checkout/internal/domain"
	"feast-checkout/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const _defaultContextTimeout = 10 * time.Second

type Handler struct {
	orders service.OrderService
	otps   service.OtpService
	health func() map[string]string
	log    *zap.SugaredLogger
}

func NewHandler(
	orders service.OrderService,
	otps service.OtpService,
	health func() map[string]string,
	log *zap.SugaredLogger,
) *Handler {
	return &Handler{
		orders: orders,
		otps:   otps,
		health: health,
		log:    log,
	}
}

type orderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// createOrderHandler accepts an order submission, revalidates it against the
// catalog and persists it. Validation rejections reuse the 200 status with
// success=false in the body; storefront clients check the flag, not the
// status. Only decode failures and internal errors use a different code.
func (h *Handler) createOrderHandler(c *gin.Context) {
	var sub domain.OrderSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, orderResponse{Success: false, Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	order, err := h.orders.ValidateAndCreate(ctx, &sub)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			h.log.Infow("order rejected", "reason", verr.Reason, "client_ip", c.ClientIP())
			c.JSON(http.StatusOK, orderResponse{Success: false, Error: verr.Reason})
			return
		}
		// Infra failures: the sentinel text is generic by construction, the
		// underlying driver error was already logged in the service.
		c.JSON(http.StatusInternalServerError, orderResponse{Success: false, Error: err.Error()})
		return
	}

	h.log.Infow("order created", "order_id", order.ID, "total", order.TotalAmount)
	c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}

type otpSendRequest struct {
	Email        string `json:"email"`
	CustomerName string `json:"customerName"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// sendOtpHandler issues a fresh code. Unlike the order endpoint, failures
// here carry real error statuses.
func (h *Handler) sendOtpHandler(c *gin.Context) {
	var req otpSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	rec, err := h.otps.Issue(ctx, req.Email, req.CustomerName)
	if err != nil {
		h.handleOtpError(c, err)
		return
	}

	h.log.Infow("otp issued", "email", rec.Email, "expires_at", rec.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "OTP sent successfully",
		"expiresAt": rec.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) verifyOtpHandler(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	if err := h.otps.Verify(ctx, req.Email, req.Otp); err != nil {
		h.handleOtpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "email verified successfully"})
}

func (h *Handler) handleOtpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrOtpNotFound),
		errors.Is(err, domain.ErrOtpExpired),
		errors.Is(err, domain.ErrOtpMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotificationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

func (h *Handler) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.health())
}

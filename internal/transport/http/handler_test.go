package httpt

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feast-checkout/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderService struct {
	order *domain.Order
	err   error
}

func (s *stubOrderService) ValidateAndCreate(context.Context, *domain.OrderSubmission) (*domain.Order, error) {
	return s.order, s.err
}

type stubOtpService struct {
	rec       *domain.OtpRecord
	issueErr  error
	verifyErr error
}

func (s *stubOtpService) Issue(context.Context, string, string) (*domain.OtpRecord, error) {
	return s.rec, s.issueErr
}

func (s *stubOtpService) Verify(context.Context, string, string) error {
	return s.verifyErr
}

func newTestRouter(orders *stubOrderService, otps *stubOtpService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(orders, otps, func() map[string]string {
		return map[string]string{"status": "up"}
	}, zap.NewNop().Sugar())
	return NewRouter(h)
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_Success(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), CustomerName: "Ananya Rao", Status: domain.OrderReceived}
	r := newTestRouter(&stubOrderService{order: order}, &stubOtpService{})

	w := postJSON(t, r, "/api/orders", domain.OrderSubmission{})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	assert.Equal(t, order.ID, resp.Order.ID)
}

// Validation rejections keep the 200 status; callers must inspect the
// success flag. Existing storefront clients depend on this.
func TestCreateOrder_RejectionReusesOKStatus(t *testing.T) {
	r := newTestRouter(&stubOrderService{
		err: domain.NewValidationError("price mismatch for Kesar Barfi 500g, please refresh and try again"),
	}, &stubOtpService{})

	w := postJSON(t, r, "/api/orders", domain.OrderSubmission{})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "price mismatch")
	assert.Nil(t, resp.Order)
}

func TestCreateOrder_InfraErrorIsGenericAnd500(t *testing.T) {
	r := newTestRouter(&stubOrderService{err: domain.ErrOrderPersistence}, &stubOtpService{})

	w := postJSON(t, r, "/api/orders", domain.OrderSubmission{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to save order")
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	r := newTestRouter(&stubOrderService{}, &stubOtpService{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendOtp_Success(t *testing.T) {
	expires := time.Date(2026, 8, 29, 12, 5, 0, 0, time.UTC)
	r := newTestRouter(&stubOrderService{}, &stubOtpService{
		rec: &domain.OtpRecord{Email: "a@example.com", Code: "123456", ExpiresAt: expires},
	})

	w := postJSON(t, r, "/api/otp/send", gin.H{"email": "a@example.com", "customerName": "Ananya"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "2026-08-29T12:05:00Z", resp["expiresAt"])
	assert.NotContains(t, w.Body.String(), "123456", "the code travels by email, not in the response")
}

// The OTP endpoints use real error statuses, unlike the order endpoint.
func TestSendOtp_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest},
		{"send failed", domain.ErrNotificationFailed, http.StatusBadGateway},
		{"store failed", domain.ErrOtpPersistence, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubOrderService{}, &stubOtpService{issueErr: tt.err})
			w := postJSON(t, r, "/api/otp/send", gin.H{"email": "a@example.com", "customerName": "A"})
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestVerifyOtp_Statuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"ok", nil, http.StatusOK},
		{"expired", domain.ErrOtpExpired, http.StatusBadRequest},
		{"mismatch", domain.ErrOtpMismatch, http.StatusBadRequest},
		{"not found", domain.ErrOtpNotFound, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubOrderService{}, &stubOtpService{verifyErr: tt.err})
			w := postJSON(t, r, "/api/otp/verify", gin.H{"email": "a@example.com", "otp": "123456"})
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestCORS_OpenToAnyOrigin(t *testing.T) {
	r := newTestRouter(&stubOrderService{}, &stubOtpService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://storefront.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubOrderService{}, &stubOtpService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"up"`)
}

package httpt

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the checkout API. CORS is wide open with no credentials:
// the storefront is served from arbitrary hosting domains and nothing here
// relies on cookies.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.GET("/health", h.healthHandler)

	api := r.Group("/api")
	{
		api.POST("/orders", h.createOrderHandler)
		api.POST("/otp/send", h.sendOtpHandler)
		api.POST("/otp/verify", h.verifyOtpHandler)
	}

	return r
}

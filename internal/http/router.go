// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/http/handlers"
	"skybook/internal/http/middleware"
)

func NewRouter(conv handlers.TurnHandler) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	webhook := handlers.NewWebhookHandler(conv)
	r.POST("/chatbot", webhook.Receive)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/modules/conversation"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrTranscription):
		// The user was already notified in-chat; a non-2xx here would make
		// the bot platform re-deliver the same broken voice message.
		writeJSON(c, http.StatusOK, statusResponse{Status: "error"})
	case errors.Is(err, conversation.ErrBusy):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

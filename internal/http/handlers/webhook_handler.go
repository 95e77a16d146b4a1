// README: Inbound webhook handler; normalizes platform updates into turns.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/internal/modules/conversation"
	"skybook/internal/types"
)

// A full turn can involve transcription, two translations, one model call,
// and speech synthesis.
const turnTimeout = 60 * time.Second

// TurnHandler is implemented by the conversation service.
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn conversation.Turn) (conversation.TurnResult, error)
}

type WebhookHandler struct {
	conv TurnHandler
}

func NewWebhookHandler(conv TurnHandler) *WebhookHandler {
	return &WebhookHandler{conv: conv}
}

// update mirrors the subset of the bot platform payload the agent consumes.
type update struct {
	Message struct {
		From struct {
			ID int64 `json:"id"`
		} `json:"from"`
		Text  string `json:"text"`
		Voice *struct {
			FileID string `json:"file_id"`
		} `json:"voice"`
	} `json:"message"`
}

// Receive handles POST /chatbot.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var upd update
	if err := c.ShouldBindJSON(&upd); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if upd.Message.From.ID == 0 {
		writeError(c, http.StatusBadRequest, "missing sender id")
		return
	}

	turn := conversation.Turn{
		UserID: types.ID(strconv.FormatInt(upd.Message.From.ID, 10)),
		Text:   upd.Message.Text,
	}
	if upd.Message.Voice != nil {
		turn.VoiceFileID = upd.Message.Voice.FileID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	if _, err := h.conv.HandleTurn(ctx, turn); err != nil {
		writeTurnError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, statusResponse{Status: "ok"})
}

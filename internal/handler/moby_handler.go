package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"roomboard/backend/internal/moby"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MobyInput is the conversation sent to the assistant.
type MobyInput struct {
	Messages json.RawMessage `json:"messages" swaggertype:"array,object"`
}

// MobyResponse carries the assistant's reply, null when it produced none.
type MobyResponse struct {
	Response *string `json:"response"`
}

// MobyUpstreamErrorResponse reports a failed call to the AI endpoint.
type MobyUpstreamErrorResponse struct {
	Error   string `json:"error" example:"Cloudflare AI Error"`
	Status  int    `json:"status" example:"429"`
	Details any    `json:"details"`
}

// ChatWithMoby godoc
// @Summary      Talk to Moby
// @Description  Forwards a conversation to the Moby assistant and returns its reply.
// @Tags         moby
// @Accept       json
// @Produce      json
// @Param        input body MobyInput true "Conversation"
// @Success      200  {object}  MobyResponse
// @Failure      400  {object}  ErrorResponse "Invalid messages"
// @Failure      500  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "Assistant is not configured"
// @Failure      default  {object}  MobyUpstreamErrorResponse "Upstream status and body from the AI endpoint"
// @Router       /moby [post]
func (h *Handler) ChatWithMoby(c *gin.Context) {
	if h.moby == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Assistant is not configured"})
		return
	}

	var input MobyInput
	if err := bindJSON(c, &input); err != nil {
		abortServerError(c, err, "Handler.ChatWithMoby: failed to decode body")
		return
	}

	raw := bytes.TrimSpace(input.Messages)
	if len(raw) == 0 || raw[0] != '[' {
		badRequest(c, "Invalid messages")
		return
	}
	var messages []json.RawMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		badRequest(c, "Invalid messages")
		return
	}

	logCtx := logrus.WithFields(logrus.Fields{
		"request_id": c.GetString("requestID"),
		"messages":   len(messages),
	})
	logCtx.Info("Handler.ChatWithMoby: calling assistant")

	reply, err := h.moby.Chat(c.Request.Context(), messages)
	var upstream *moby.UpstreamError
	if errors.As(err, &upstream) {
		logCtx.WithField("status", upstream.StatusCode).Error("Handler.ChatWithMoby: upstream error")
		c.JSON(upstream.StatusCode, MobyUpstreamErrorResponse{
			Error:   "Cloudflare AI Error",
			Status:  upstream.StatusCode,
			Details: upstream.Details,
		})
		return
	}
	if err != nil {
		abortServerError(c, err, "Handler.ChatWithMoby: assistant call failed")
		return
	}

	c.JSON(http.StatusOK, MobyResponse{Response: reply})
}

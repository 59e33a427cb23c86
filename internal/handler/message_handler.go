package handler

import (
	"net/http"

	"roomboard/backend/internal/auth"
	"roomboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MessageInput defines the body for posting a message.
type MessageInput struct {
	Author FormString `json:"author" swaggertype:"string" example:"ME"`
	Body   FormString `json:"body" swaggertype:"string" example:"Tea of the day: peach milk."`
}

// MessageResponse defines a message in a room listing. Times are Unix milliseconds.
type MessageResponse struct {
	ID        int64  `json:"id" example:"1"`
	Author    string `json:"author" example:"ME"`
	Body      string `json:"body" example:"Tea of the day: peach milk."`
	CreatedAt int64  `json:"createdAt" example:"1767139200000"`
	ExpiresAt int64  `json:"expiresAt" example:"1767225600000"`
}

// MessageListResponse wraps a room's messages.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func newMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Author:    message.Author,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
		ExpiresAt: message.ExpiresAt,
	}
}

// endregion

// ListMessages godoc
// @Summary      List room messages
// @Description  Lists up to 200 unexpired messages of a room, oldest first.
// @Tags         messages
// @Produce      json
// @Param        id               path    int     true   "Room ID"
// @Param        x-room-password  header  string  false  "Room password"
// @Success      200  {object}  MessageListResponse
// @Failure      400  {object}  ErrorResponse "Invalid room id"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "Room not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms/{id}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	roomID := c.GetInt64(auth.RoomIDKey)

	messages, err := h.store.ListMessages(c.Request.Context(), roomID)
	if err != nil {
		abortServerError(c, err, "Handler.ListMessages: failed to list messages")
		return
	}

	response := MessageListResponse{Messages: make([]MessageResponse, 0, len(messages))}
	for _, message := range messages {
		response.Messages = append(response.Messages, newMessageResponse(message))
	}
	c.JSON(http.StatusOK, response)
}

// CreateMessage godoc
// @Summary      Post a message
// @Description  Posts a message to a room. It expires after the retention window.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id               path    int           true   "Room ID"
// @Param        x-room-password  header  string        false  "Room password"
// @Param        input            body    MessageInput  true   "Message"
// @Success      200  {object}  OKResponse
// @Failure      400  {object}  ErrorResponse "Message is empty"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "Room not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms/{id}/messages [post]
func (h *Handler) CreateMessage(c *gin.Context) {
	roomID := c.GetInt64(auth.RoomIDKey)

	var input MessageInput
	if err := bindJSON(c, &input); err != nil {
		abortServerError(c, err, "Handler.CreateMessage: failed to decode body")
		return
	}

	// The author is shortened but never trimmed.
	author := input.Author.String()
	if author == "" {
		author = defaultAuthor
	}
	author = truncate(author, maxAuthorLength)

	body := clip(input.Body.String(), maxMessageLength)
	if body == "" {
		badRequest(c, "Message is empty")
		return
	}

	if err := h.store.AddMessage(c.Request.Context(), roomID, author, body); err != nil {
		abortServerError(c, err, "Handler.CreateMessage: failed to create message")
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

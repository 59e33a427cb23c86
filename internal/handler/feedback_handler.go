package handler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FeedbackInput defines the body of the feedback form.
type FeedbackInput struct {
	Nickname FormString `json:"nickname" swaggertype:"string" example:"kumo"`
	Email    FormString `json:"email" swaggertype:"string" example:"kumo@example.com"`
	Opinion  FormString `json:"opinion" swaggertype:"string" example:"I love the sticker room."`
}

// CreateFeedback godoc
// @Summary      Send feedback
// @Description  Stores an opinion with an optional nickname and email address.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        input body FeedbackInput true "Feedback"
// @Success      200  {object}  OKResponse
// @Failure      400  {object}  ErrorResponse "Opinion is empty or invalid email format"
// @Failure      500  {object}  ErrorResponse
// @Router       /feedback [post]
func (h *Handler) CreateFeedback(c *gin.Context) {
	var input FeedbackInput
	if err := bindJSON(c, &input); err != nil {
		abortServerError(c, err, "Handler.CreateFeedback: failed to decode body")
		return
	}

	nickname := clip(input.Nickname.String(), maxNicknameLength)
	email := clip(input.Email.String(), maxEmailLength)
	opinion := clip(input.Opinion.String(), maxOpinionLength)

	if opinion == "" {
		badRequest(c, "Opinion is empty")
		return
	}
	if email != "" && !emailPattern.MatchString(email) {
		badRequest(c, "Invalid email format")
		return
	}

	if err := h.store.AddFeedback(c.Request.Context(), nickname, strings.ToLower(email), opinion); err != nil {
		abortServerError(c, err, "Handler.CreateFeedback: failed to store feedback")
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

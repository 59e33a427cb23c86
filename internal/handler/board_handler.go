package handler

import (
	"net/http"

	"roomboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// BoardPostInput defines the body for a board post.
type BoardPostInput struct {
	Nickname FormString `json:"nickname" swaggertype:"string" example:"kumo"`
	Body     FormString `json:"body" swaggertype:"string" example:"Hello, board!"`
}

// BoardPostResponse defines a post on the message board.
type BoardPostResponse struct {
	ID        int64  `json:"id" example:"1"`
	Nickname  string `json:"nickname" example:"kumo"`
	Body      string `json:"body" example:"Hello, board!"`
	CreatedAt int64  `json:"createdAt" example:"1767139200000"`
}

// BoardPostListResponse wraps the board posts.
type BoardPostListResponse struct {
	Posts []BoardPostResponse `json:"posts"`
}

func newBoardPostResponse(post models.BoardPost) BoardPostResponse {
	return BoardPostResponse{
		ID:        post.ID,
		Nickname:  post.Nickname,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
	}
}

// ListBoardPosts godoc
// @Summary      List board posts
// @Description  Lists up to 300 message board posts, newest first.
// @Tags         message-board
// @Produce      json
// @Success      200  {object}  BoardPostListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /message-board [get]
func (h *Handler) ListBoardPosts(c *gin.Context) {
	posts, err := h.store.ListBoardPosts(c.Request.Context())
	if err != nil {
		abortServerError(c, err, "Handler.ListBoardPosts: failed to list posts")
		return
	}

	response := BoardPostListResponse{Posts: make([]BoardPostResponse, 0, len(posts))}
	for _, post := range posts {
		response.Posts = append(response.Posts, newBoardPostResponse(post))
	}
	c.JSON(http.StatusOK, response)
}

// CreateBoardPost godoc
// @Summary      Post to the message board
// @Tags         message-board
// @Accept       json
// @Produce      json
// @Param        input body BoardPostInput true "Post"
// @Success      200  {object}  OKResponse
// @Failure      400  {object}  ErrorResponse "Message is empty"
// @Failure      500  {object}  ErrorResponse
// @Router       /message-board [post]
func (h *Handler) CreateBoardPost(c *gin.Context) {
	var input BoardPostInput
	if err := bindJSON(c, &input); err != nil {
		abortServerError(c, err, "Handler.CreateBoardPost: failed to decode body")
		return
	}

	nickname := clip(input.Nickname.String(), maxNicknameLength)
	body := clip(input.Body.String(), maxBoardLength)
	if body == "" {
		badRequest(c, "Message is empty")
		return
	}

	if err := h.store.AddBoardPost(c.Request.Context(), nickname, body); err != nil {
		abortServerError(c, err, "Handler.CreateBoardPost: failed to create post")
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

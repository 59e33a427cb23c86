package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"roomboard/backend/internal/auth"
	"roomboard/backend/internal/database"
	"roomboard/backend/internal/moby"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// region --- Limits ---

const (
	maxRoomNameLength = 40
	maxAuthorLength   = 12
	maxMessageLength  = 280
	maxNicknameLength = 24
	maxEmailLength    = 120
	maxOpinionLength  = 1200
	maxBoardLength    = 1200

	defaultAuthor = "anon"
)

// endregion

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// OKResponse acknowledges a successful write.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// Handler serves the HTTP API on top of the store.
type Handler struct {
	store  *database.Store
	hasher auth.PasswordHasher
	moby   *moby.Client
}

// New creates a Handler. mobyClient may be nil when the assistant is not configured.
func New(store *database.Store, hasher auth.PasswordHasher, mobyClient *moby.Client) *Handler {
	if store == nil {
		panic("Store cannot be nil for Handler")
	}
	if hasher == nil {
		hasher = auth.SHA256Hasher{}
	}
	return &Handler{store: store, hasher: hasher, moby: mobyClient}
}

// RequireSchema makes sure the tables exist before the request is handled.
func (h *Handler) RequireSchema() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.store.EnsureSchema(c.Request.Context()); err != nil {
			abortServerError(c, err, "failed to prepare schema")
			return
		}
		c.Next()
	}
}

// PrepareRooms creates the schema, seeds starter rooms and sweeps expired
// rooms and messages before room and message requests.
func (h *Handler) PrepareRooms() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := h.store.EnsureSchema(ctx); err != nil {
			abortServerError(c, err, "failed to prepare schema")
			return
		}
		if err := h.store.SeedIfEmpty(ctx); err != nil {
			abortServerError(c, err, "failed to seed rooms")
			return
		}
		if err := h.store.CleanupExpired(ctx); err != nil {
			abortServerError(c, err, "failed to sweep expired content")
			return
		}
		c.Next()
	}
}

// abortServerError logs err with request context and answers with the generic 500 body.
func abortServerError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	logrus.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("requestID"),
		"path":       c.FullPath(),
	}).Error(msg)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
}

// badRequest answers with a 400 and the given message.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// bindJSON decodes the request body into v. An empty body leaves v untouched.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// clip trims surrounding whitespace and keeps at most n characters.
func clip(s string, n int) string {
	return truncate(strings.TrimSpace(s), n)
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Store returns the underlying store, used by route middleware.
func (h *Handler) Store() *database.Store { return h.store }

// Hasher returns the room password hasher.
func (h *Handler) Hasher() auth.PasswordHasher { return h.hasher }

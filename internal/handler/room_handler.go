package handler

import (
	"net/http"
	"strings"

	"roomboard/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// region --- DTOs ---

// RoomInput defines the body for creating a room.
type RoomInput struct {
	Name     FormString `json:"name" swaggertype:"string" example:"Sunset Cafe"`
	Password FormString `json:"password" swaggertype:"string" example:"hunter2"`
}

// RoomResponse defines a room in the room list.
type RoomResponse struct {
	ID             int64  `json:"id" example:"1"`
	Name           string `json:"name" example:"Sunset Cafe"`
	ActiveMessages int64  `json:"activeMessages" example:"3"`
	NextExpireAt   int64  `json:"nextExpireAt" example:"1767225600000"`
	NextExpiresIn  string `json:"nextExpiresIn" example:"23h"`
	HasPassword    bool   `json:"hasPassword" example:"false"`
}

// RoomListResponse wraps the room list.
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// CreateRoomResponse returns the id of a new room.
type CreateRoomResponse struct {
	ID int64 `json:"id" example:"5"`
}

func newRoomResponse(room database.RoomSummary) RoomResponse {
	return RoomResponse{
		ID:             room.ID,
		Name:           room.Name,
		ActiveMessages: room.ActiveMessages,
		NextExpireAt:   room.NextExpireAt,
		NextExpiresIn:  room.NextExpiresIn,
		HasPassword:    room.HasPassword,
	}
}

// endregion

// ListRooms godoc
// @Summary      List rooms
// @Description  Lists every live room with its active message count and time until expiry.
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  RoomListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		abortServerError(c, err, "Handler.ListRooms: failed to list rooms")
		return
	}

	response := RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		response.Rooms = append(response.Rooms, newRoomResponse(room))
	}
	c.JSON(http.StatusOK, response)
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  Creates a room. A non-empty password protects its messages.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        input body RoomInput true "Room Info"
// @Success      200  {object}  CreateRoomResponse
// @Failure      400  {object}  ErrorResponse "Room name is empty"
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var input RoomInput
	if err := bindJSON(c, &input); err != nil {
		abortServerError(c, err, "Handler.CreateRoom: failed to decode body")
		return
	}

	name := clip(input.Name.String(), maxRoomNameLength)
	if name == "" {
		badRequest(c, "Room name is empty")
		return
	}

	passwordHash, err := h.hasher.Hash(strings.TrimSpace(input.Password.String()))
	if err != nil {
		abortServerError(c, err, "Handler.CreateRoom: failed to hash password")
		return
	}

	id, err := h.store.AddRoom(c.Request.Context(), name, passwordHash)
	if err != nil {
		abortServerError(c, err, "Handler.CreateRoom: failed to create room")
		return
	}

	logrus.WithFields(logrus.Fields{"room_id": id, "protected": passwordHash != ""}).Info("Handler.CreateRoom: room created")
	c.JSON(http.StatusOK, CreateRoomResponse{ID: id})
}

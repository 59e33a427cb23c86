package auth

import (
	"errors"
	"net/http"
	"strconv"

	"roomboard/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RoomPasswordHeader carries the plain room password on message requests.
const RoomPasswordHeader = "x-room-password"

// RoomIDKey is the gin context key holding the validated room id.
const RoomIDKey = "roomID"

// RoomAccessMiddleware validates the :id path parameter and checks the
// x-room-password header against the room's stored hash. Rooms without a
// stored hash are open to everyone.
func RoomAccessMiddleware(store *database.Store, hasher PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || roomID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room id"})
			return
		}

		storedHash, err := store.GetRoomPasswordHash(c.Request.Context(), roomID)
		if errors.Is(err, database.ErrRoomNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		if err != nil {
			logrus.WithError(err).WithField("room_id", roomID).Error("RoomAccess: failed to load room")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		if !hasher.Verify(storedHash, c.GetHeader(RoomPasswordHeader)) {
			logrus.WithField("room_id", roomID).Info("RoomAccess: password mismatch")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Set(RoomIDKey, roomID)
		c.Next()
	}
}

package database

import "errors"

// ErrRoomNotFound is returned when a room id does not match any stored room.
var ErrRoomNotFound = errors.New("room not found")

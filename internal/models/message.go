package models

// Message represents a chat message within a room.
// ExpiresAt is always CreatedAt plus the retention window, both in Unix milliseconds.
type Message struct {
	ID        int64  `gorm:"primaryKey"`
	RoomID    int64  `gorm:"not null;index:idx_messages_room"`
	Author    string `gorm:"not null"`
	Body      string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:milli"`
	ExpiresAt int64  `gorm:"not null;index:idx_messages_expires"`

	Room *Room `gorm:"foreignKey:RoomID"` // Belongs to Room
}

func (Message) TableName() string { return "messages" }

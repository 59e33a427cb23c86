package models

// Room is a named channel holding short-lived messages.
// PasswordHash is empty for unprotected rooms.
type Room struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null;index;autoCreateTime:milli"`
	PasswordHash string `gorm:"not null;default:''"`
}

func (Room) TableName() string { return "rooms" }

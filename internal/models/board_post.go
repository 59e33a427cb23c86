package models

// BoardPost is a persistent entry in the global message board. It never expires.
type BoardPost struct {
	ID        int64  `gorm:"primaryKey"`
	Nickname  string `gorm:"not null;default:''"`
	Body      string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;index;autoCreateTime:milli"`
}

func (BoardPost) TableName() string { return "message_board_posts" }

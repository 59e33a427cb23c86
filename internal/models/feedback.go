package models

// FeedbackMessage is an append-only opinion submitted through the feedback form.
type FeedbackMessage struct {
	ID        int64  `gorm:"primaryKey"`
	Nickname  string `gorm:"not null;default:''"`
	Email     string `gorm:"not null;default:''"`
	Opinion   string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;index;autoCreateTime:milli"`
}

func (FeedbackMessage) TableName() string { return "feedback_messages" }

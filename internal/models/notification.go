package models

import (
	"gorm.io/datatypes"
)

// Notification - уведомление пользователя, создается подписчиком
// шины событий после успешного перехода жизненного цикла.
type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"`
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data"` // id затронутых сущностей
	IsRead  bool           `gorm:"not null;default:false;index" json:"is_read"`
}

package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	// Group is optional; deleting a group leaves its posts behind.
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image     string    `json:"image"` // stored upload path, optional
	CreatedAt time.Time `json:"created_at"`

	// Not a column, filled on list queries.
	CommentCount int `gorm:"-" json:"comment_count"`
}

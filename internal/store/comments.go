package store

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

type Comments interface {
	Create(comment *models.Comment) error
	ByPost(postID uint) ([]models.Comment, error)
	CountsByPost(postIDs []uint) (map[uint]int, error)
}

type gormComments struct {
	conn *gorm.DB
}

func NewComments(conn *gorm.DB) Comments {
	return &gormComments{conn: conn}
}

func (s *gormComments) Create(comment *models.Comment) error {
	return s.conn.Create(comment).Error
}

func (s *gormComments) ByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.conn.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountsByPost fetches comment counts for a batch of posts in one query.
func (s *gormComments) CountsByPost(postIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID uint
		Count  int
	}
	var rows []row
	err := s.conn.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

package store

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Follows interface {
	// Ensure creates the edge unless it already exists. A concurrent
	// duplicate insert is resolved by the unique (user, author) index,
	// not by application locking.
	Ensure(userID, authorID uint) error
	Remove(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	AuthorIDs(userID uint) ([]uint, error)
	CountFollowers(authorID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
}

type gormFollows struct {
	conn *gorm.DB
}

func NewFollows(conn *gorm.DB) Follows {
	return &gormFollows{conn: conn}
}

func (s *gormFollows) Ensure(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return s.conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

func (s *gormFollows) Remove(userID, authorID uint) error {
	return s.conn.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (s *gormFollows) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := s.conn.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// AuthorIDs lists the authors a user follows.
func (s *gormFollows) AuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.conn.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *gormFollows) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := s.conn.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (s *gormFollows) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := s.conn.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

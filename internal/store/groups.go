package store

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

type Groups interface {
	Create(group *models.Group) error
	ByID(id uint) (*models.Group, error)
	BySlug(slug string) (*models.Group, error)
	All() ([]models.Group, error)
	Delete(id uint) error
}

type gormGroups struct {
	conn *gorm.DB
}

func NewGroups(conn *gorm.DB) Groups {
	return &gormGroups{conn: conn}
}

func (s *gormGroups) Create(group *models.Group) error {
	return s.conn.Create(group).Error
}

func (s *gormGroups) ByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.conn.First(&group, id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *gormGroups) BySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := s.conn.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *gormGroups) All() ([]models.Group, error) {
	var groups []models.Group
	if err := s.conn.Order("id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete removes the group only. Its posts survive with a null group,
// enforced by the SET NULL constraint on Post.GroupID.
func (s *gormGroups) Delete(id uint) error {
	return s.conn.Delete(&models.Group{}, id).Error
}

package store

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

type Users interface {
	Create(user *models.User) error
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	Delete(id uint) error
}

type gormUsers struct {
	conn *gorm.DB
}

func NewUsers(conn *gorm.DB) Users {
	return &gormUsers{conn: conn}
}

func (s *gormUsers) Create(user *models.User) error {
	return s.conn.Create(user).Error
}

func (s *gormUsers) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.conn.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.conn.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.conn.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Delete removes the account. Follow edges on either side go with it
// via the foreign key cascade.
func (s *gormUsers) Delete(id uint) error {
	return s.conn.Delete(&models.User{}, id).Error
}

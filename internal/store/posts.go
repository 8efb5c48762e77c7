package store

import (
	"inkwell/internal/models"

	"gorm.io/gorm"
)

type Posts interface {
	Create(post *models.Post) error
	ByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	CountByAuthor(authorID uint) (int64, error)

	// Feed sources. Each returns a lazy query the paginator slices.
	All() *PostQuery
	ByGroup(groupID uint) *PostQuery
	ByAuthor(authorID uint) *PostQuery
	ByAuthors(authorIDs []uint) *PostQuery
}

type gormPosts struct {
	conn *gorm.DB
}

func NewPosts(conn *gorm.DB) Posts {
	return &gormPosts{conn: conn}
}

func (s *gormPosts) Create(post *models.Post) error {
	return s.conn.Create(post).Error
}

func (s *gormPosts) ByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.conn.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *gormPosts) Update(post *models.Post) error {
	return s.conn.Save(post).Error
}

// Delete hard-deletes the post; its comments follow via the cascade.
func (s *gormPosts) Delete(id uint) error {
	return s.conn.Delete(&models.Post{}, id).Error
}

func (s *gormPosts) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := s.conn.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (s *gormPosts) All() *PostQuery {
	return &PostQuery{conn: s.conn, scope: func(q *gorm.DB) *gorm.DB { return q }}
}

func (s *gormPosts) ByGroup(groupID uint) *PostQuery {
	return &PostQuery{conn: s.conn, scope: func(q *gorm.DB) *gorm.DB {
		return q.Where("group_id = ?", groupID)
	}}
}

func (s *gormPosts) ByAuthor(authorID uint) *PostQuery {
	return &PostQuery{conn: s.conn, scope: func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id = ?", authorID)
	}}
}

func (s *gormPosts) ByAuthors(authorIDs []uint) *PostQuery {
	ids := authorIDs
	return &PostQuery{conn: s.conn, scope: func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id IN ?", ids)
	}}
}

// PostQuery is a restartable, ordered post sequence. Nothing runs until
// Count or Slice is called, and each call re-executes the query, so the
// paginator always sees the same deterministic order: newest first,
// higher id first on ties.
type PostQuery struct {
	conn  *gorm.DB
	scope func(*gorm.DB) *gorm.DB
}

func (q *PostQuery) Count() (int64, error) {
	var count int64
	err := q.scope(q.conn.Model(&models.Post{})).Count(&count).Error
	return count, err
}

func (q *PostQuery) Slice(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := q.scope(q.conn.Preload("Author").Preload("Group")).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

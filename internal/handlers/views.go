package handlers

import (
	"html/template"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
)

// Every page gets a typed view model instead of an ad-hoc context map.
// basePage carries what the shared layout needs; Render fills it in.

type viewModel interface {
	bind(viewer *models.User, path string)
}

type basePage struct {
	Title       string
	Viewer      *models.User
	CurrentPath string
}

func (p *basePage) bind(viewer *models.User, path string) {
	p.Viewer = viewer
	p.CurrentPath = path
}

type IndexPage struct {
	basePage
	Page *pagination.Page
}

type FollowFeedPage struct {
	basePage
	Page *pagination.Page
}

type GroupPage struct {
	basePage
	Group *models.Group
	Page  *pagination.Page
}

type GroupListPage struct {
	basePage
	Groups []models.Group
}

type ProfilePage struct {
	basePage
	Author         *models.User
	Page           *pagination.Page
	Following      bool
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
}

// CommentView pairs a comment with its rendered body.
type CommentView struct {
	models.Comment
	TextHTML template.HTML
}

type PostDetailPage struct {
	basePage
	Post        *models.Post
	PostHTML    template.HTML
	Comments    []CommentView
	AuthorPosts int64
	Error       string
}

type PostFormPage struct {
	basePage
	Post          *models.Post
	Groups        []models.Group
	SelectedGroup uint
	IsEdit        bool
	Error         string
}

type AuthPage struct {
	basePage
	Error string
	Next  string
}

type ErrorPage struct {
	basePage
	Message string
}

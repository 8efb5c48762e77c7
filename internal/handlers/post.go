package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/internal/feed"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/services"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	pageSize int
	feed     *feed.Service
	posts    store.Posts
	comments store.Comments
	groups   store.Groups
	images   *services.ImageStore
}

func NewPostHandler(pageSize int, feedSvc *feed.Service, posts store.Posts, comments store.Comments, groups store.Groups, images *services.ImageStore) *PostHandler {
	return &PostHandler{
		pageSize: pageSize,
		feed:     feedSvc,
		posts:    posts,
		comments: comments,
		groups:   groups,
		images:   images,
	}
}

// fillCommentCounts batch-fills the per-post comment counters shown on
// list pages.
func (h *PostHandler) fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := h.comments.CountsByPost(ids)
	if err != nil {
		utils.Sugar.Warnf("comment counts: %v", err)
		return
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
}

func (h *PostHandler) assemblePage(c *gin.Context, sel feed.Selector) (*feed.Feed, *pagination.Page, bool) {
	f, err := h.feed.Assemble(sel)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Page not found")
		} else {
			utils.Sugar.Errorf("assemble feed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return nil, nil, false
	}

	number := pagination.ParseNumber(c.Query("page"))
	page, err := pagination.Paginate(f.Seq, number, h.pageSize)
	if err != nil {
		utils.Sugar.Errorf("paginate feed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return nil, nil, false
	}

	h.fillCommentCounts(page.Posts)
	return f, page, true
}

// Index is the global feed. The route is wrapped in the page cache, so
// within the TTL this handler is not even reached.
func (h *PostHandler) Index(c *gin.Context) {
	_, page, ok := h.assemblePage(c, feed.All())
	if !ok {
		return
	}
	Render(c, http.StatusOK, "index.html", &IndexPage{
		basePage: basePage{Title: "Latest posts"},
		Page:     page,
	})
}

// FollowIndex lists posts by the authors the viewer follows.
func (h *PostHandler) FollowIndex(c *gin.Context) {
	viewer, _ := middleware.Viewer(c)
	_, page, ok := h.assemblePage(c, feed.FollowedBy(viewer.ID))
	if !ok {
		return
	}
	Render(c, http.StatusOK, "follow.html", &FollowFeedPage{
		basePage: basePage{Title: "Your feed"},
		Page:     page,
	})
}

// GroupPosts lists a single group's posts, newest first.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	f, page, ok := h.assemblePage(c, feed.ByGroup(c.Param("slug")))
	if !ok {
		return
	}
	Render(c, http.StatusOK, "group.html", &GroupPage{
		basePage: basePage{Title: f.Group.Title},
		Group:    f.Group,
		Page:     page,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.lookupPost(c)
	if !ok {
		return
	}

	comments, err := h.comments.ByPost(post.ID)
	if err != nil {
		utils.Sugar.Errorf("load comments for post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	views := make([]CommentView, len(comments))
	for i, comment := range comments {
		views[i] = CommentView{
			Comment:  comment,
			TextHTML: utils.RenderMarkdown(comment.Text),
		}
	}

	authorPosts, _ := h.posts.CountByAuthor(post.AuthorID)

	Render(c, http.StatusOK, "post_detail.html", &PostDetailPage{
		basePage:    basePage{Title: post.Author.Username + "'s post"},
		Post:        post,
		PostHTML:    utils.RenderMarkdown(post.Text),
		Comments:    views,
		AuthorPosts: authorPosts,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	groups, err := h.groups.All()
	if err != nil {
		utils.Sugar.Errorf("load groups: %v", err)
	}
	Render(c, http.StatusOK, "post_form.html", &PostFormPage{
		basePage: basePage{Title: "New post"},
		Groups:   groups,
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	viewer, _ := middleware.Viewer(c)

	text := c.PostForm("text")
	if text == "" {
		h.renderForm(c, http.StatusBadRequest, nil, "Text cannot be empty")
		return
	}

	post := models.Post{
		Text:     text,
		AuthorID: viewer.ID,
		GroupID:  h.parseGroupID(c.PostForm("group_id")),
	}

	if path, ok := h.saveImage(c); ok {
		post.Image = path
	}

	if err := h.posts.Create(&post); err != nil {
		utils.Sugar.Errorf("create post: %v", err)
		h.renderForm(c, http.StatusInternalServerError, nil, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+viewer.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.guardAuthor(c)
	if !ok {
		return
	}
	h.renderEditForm(c, http.StatusOK, post, "")
}

func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.guardAuthor(c)
	if !ok {
		return
	}

	text := c.PostForm("text")
	if text == "" {
		h.renderEditForm(c, http.StatusBadRequest, post, "Text cannot be empty")
		return
	}

	post.Text = text
	post.GroupID = h.parseGroupID(c.PostForm("group_id"))
	if path, ok := h.saveImage(c); ok {
		post.Image = path
	}

	if err := h.posts.Update(post); err != nil {
		utils.Sugar.Errorf("update post %d: %v", post.ID, err)
		h.renderEditForm(c, http.StatusInternalServerError, post, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(post.ID), 10))
}

// Delete removes a post; its comments go with it. Non-authors are
// bounced to the detail page the same way edit is gated.
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.guardAuthor(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(post.ID); err != nil {
		utils.Sugar.Errorf("delete post %d: %v", post.ID, err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) AddComment(c *gin.Context) {
	viewer, _ := middleware.Viewer(c)
	post, ok := h.lookupPost(c)
	if !ok {
		return
	}

	detailPath := "/posts/" + strconv.FormatUint(uint64(post.ID), 10)

	text := c.PostForm("text")
	if text == "" {
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: viewer.ID,
		Text:     text,
	}
	if err := h.comments.Create(&comment); err != nil {
		utils.Sugar.Errorf("create comment on post %d: %v", post.ID, err)
	}
	c.Redirect(http.StatusFound, detailPath)
}

// lookupPost resolves the :id route param, rendering the not-found page
// on a miss.
func (h *PostHandler) lookupPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return nil, false
	}
	post, err := h.posts.ByID(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found")
		} else {
			utils.Sugar.Errorf("load post %d: %v", id, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return nil, false
	}
	return post, true
}

// guardAuthor loads the post and silently redirects anyone but the
// author back to the detail page.
func (h *PostHandler) guardAuthor(c *gin.Context) (*models.Post, bool) {
	viewer, _ := middleware.Viewer(c)
	post, ok := h.lookupPost(c)
	if !ok {
		return nil, false
	}
	if post.AuthorID != viewer.ID {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(post.ID), 10))
		return nil, false
	}
	return post, true
}

func (h *PostHandler) parseGroupID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	groupID := uint(id)
	return &groupID
}

// saveImage stores an optional image upload; a missing file field is
// not an error.
func (h *PostHandler) saveImage(c *gin.Context) (string, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", false
	}
	path, err := h.images.Save(header)
	if err != nil {
		utils.Sugar.Warnf("save image: %v", err)
		return "", false
	}
	return path, true
}

func (h *PostHandler) renderForm(c *gin.Context, code int, post *models.Post, message string) {
	groups, err := h.groups.All()
	if err != nil {
		utils.Sugar.Errorf("load groups: %v", err)
	}
	Render(c, code, "post_form.html", &PostFormPage{
		basePage: basePage{Title: "New post"},
		Post:     post,
		Groups:   groups,
		Error:    message,
	})
}

func (h *PostHandler) renderEditForm(c *gin.Context, code int, post *models.Post, message string) {
	groups, err := h.groups.All()
	if err != nil {
		utils.Sugar.Errorf("load groups: %v", err)
	}
	selected := uint(0)
	if post.GroupID != nil {
		selected = *post.GroupID
	}
	Render(c, code, "post_form.html", &PostFormPage{
		basePage:      basePage{Title: "Edit post"},
		Post:          post,
		Groups:        groups,
		SelectedGroup: selected,
		IsEdit:        true,
		Error:         message,
	})
}

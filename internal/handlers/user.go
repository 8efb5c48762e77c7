package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/feed"
	"inkwell/internal/middleware"
	"inkwell/internal/pagination"
	"inkwell/internal/social"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	pageSize int
	feed     *feed.Service
	users    store.Users
	posts    store.Posts
	comments store.Comments
	follows  store.Follows
	social   *social.Service
}

func NewUserHandler(pageSize int, feedSvc *feed.Service, users store.Users, posts store.Posts, comments store.Comments, follows store.Follows, socialSvc *social.Service) *UserHandler {
	return &UserHandler{
		pageSize: pageSize,
		feed:     feedSvc,
		users:    users,
		posts:    posts,
		comments: comments,
		follows:  follows,
		social:   socialSvc,
	}
}

// Profile shows an author's posts plus follow state for the viewer.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	f, err := h.feed.Assemble(feed.ByAuthor(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
		} else {
			utils.Sugar.Errorf("assemble profile feed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	number := pagination.ParseNumber(c.Query("page"))
	page, err := pagination.Paginate(f.Seq, number, h.pageSize)
	if err != nil {
		utils.Sugar.Errorf("paginate profile feed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if len(page.Posts) > 0 {
		ids := make([]uint, len(page.Posts))
		for i, p := range page.Posts {
			ids[i] = p.ID
		}
		if counts, err := h.comments.CountsByPost(ids); err == nil {
			for i := range page.Posts {
				page.Posts[i].CommentCount = counts[page.Posts[i].ID]
			}
		}
	}

	author := f.Author
	following := false
	if viewer, ok := middleware.Viewer(c); ok {
		following, _ = h.social.IsFollowing(viewer.ID, author.ID)
	}

	postCount, _ := h.posts.CountByAuthor(author.ID)
	followerCount, _ := h.follows.CountFollowers(author.ID)
	followingCount, _ := h.follows.CountFollowing(author.ID)

	Render(c, http.StatusOK, "profile.html", &ProfilePage{
		basePage:       basePage{Title: author.Username},
		Author:         author,
		Page:           page,
		Following:      following,
		PostCount:      postCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	})
}

// Follow adds the edge and always returns to the profile. A self-follow
// attempt changes nothing; the redirect is the same either way.
func (h *UserHandler) Follow(c *gin.Context) {
	viewer, _ := middleware.Viewer(c)
	username := c.Param("username")

	author, err := h.users.ByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.Sugar.Errorf("lookup author %s: %v", username, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := h.social.Follow(viewer.ID, author.ID); err != nil && !errors.Is(err, social.ErrSelfFollow) {
		utils.Sugar.Errorf("follow %d -> %d: %v", viewer.ID, author.ID, err)
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow removes the edge if present and returns to the profile.
func (h *UserHandler) Unfollow(c *gin.Context) {
	viewer, _ := middleware.Viewer(c)
	username := c.Param("username")

	author, err := h.users.ByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return
		}
		utils.Sugar.Errorf("lookup author %s: %v", username, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := h.social.Unfollow(viewer.ID, author.ID); err != nil {
		utils.Sugar.Errorf("unfollow %d -> %d: %v", viewer.ID, author.ID, err)
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

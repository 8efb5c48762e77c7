package store

import (
	"testing"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection so every query hits the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func createUser(t *testing.T, users Users, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestLookupsReturnErrNotFound(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	groups := NewGroups(conn)
	posts := NewPosts(conn)

	if _, err := users.ByUsername("ghost"); err != ErrNotFound {
		t.Errorf("ByUsername miss = %v, want ErrNotFound", err)
	}
	if _, err := groups.BySlug("nope"); err != ErrNotFound {
		t.Errorf("BySlug miss = %v, want ErrNotFound", err)
	}
	if _, err := posts.ByID(42); err != ErrNotFound {
		t.Errorf("posts.ByID miss = %v, want ErrNotFound", err)
	}
}

func TestDeletingPostCascadesComments(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	posts := NewPosts(conn)
	comments := NewComments(conn)

	author := createUser(t, users, "alice")
	reader := createUser(t, users, "bob")

	post := &models.Post{Text: "hello", AuthorID: author.ID}
	if err := posts.Create(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	for _, text := range []string{"first", "second"} {
		if err := comments.Create(&models.Comment{PostID: post.ID, AuthorID: reader.ID, Text: text}); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	if err := posts.Delete(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var count int64
	conn.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("comments left after post delete = %d, want 0", count)
	}
}

func TestDeletingGroupKeepsPosts(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	groups := NewGroups(conn)
	posts := NewPosts(conn)

	author := createUser(t, users, "alice")
	group := &models.Group{Title: "Tech", Slug: "tech"}
	if err := groups.Create(group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	post := &models.Post{Text: "in the group", AuthorID: author.ID, GroupID: &group.ID}
	if err := posts.Create(post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := groups.Delete(group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	got, err := posts.ByID(post.ID)
	if err != nil {
		t.Fatalf("post gone after group delete: %v", err)
	}
	if got.GroupID != nil {
		t.Errorf("post group id = %v, want nil", *got.GroupID)
	}
}

func TestDeletingUserCascadesFollowEdges(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	follows := NewFollows(conn)

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	if err := follows.Ensure(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := follows.Ensure(bob.ID, alice.ID); err != nil {
		t.Fatalf("follow back: %v", err)
	}

	if err := users.Delete(alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var count int64
	conn.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("follow edges after user delete = %d, want 0", count)
	}
}

func TestEnsureFollowIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	follows := NewFollows(conn)

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	for i := 0; i < 3; i++ {
		if err := follows.Ensure(alice.ID, bob.ID); err != nil {
			t.Fatalf("ensure %d: %v", i, err)
		}
	}

	count, err := follows.CountFollowers(bob.ID)
	if err != nil {
		t.Fatalf("count followers: %v", err)
	}
	if count != 1 {
		t.Errorf("follower count = %d, want 1", count)
	}
}

func TestPostQueryOrderBreaksTiesByID(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	posts := NewPosts(conn)

	author := createUser(t, users, "alice")
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := &models.Post{Text: "same instant", AuthorID: author.ID, CreatedAt: created}
		if err := posts.Create(post); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	got, err := posts.All().Slice(0, 10)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d posts, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID <= got[i].ID {
			t.Errorf("tie not broken by id desc: %d before %d", got[i-1].ID, got[i].ID)
		}
	}
}

func TestCommentCountsByPost(t *testing.T) {
	conn := newTestDB(t)
	users := NewUsers(conn)
	posts := NewPosts(conn)
	comments := NewComments(conn)

	author := createUser(t, users, "alice")
	first := &models.Post{Text: "one", AuthorID: author.ID}
	second := &models.Post{Text: "two", AuthorID: author.ID}
	for _, p := range []*models.Post{first, second} {
		if err := posts.Create(p); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := comments.Create(&models.Comment{PostID: first.ID, AuthorID: author.ID, Text: "c"}); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	counts, err := comments.CountsByPost([]uint{first.ID, second.ID})
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[first.ID] != 3 {
		t.Errorf("first post count = %d, want 3", counts[first.ID])
	}
	if counts[second.ID] != 0 {
		t.Errorf("second post count = %d, want 0", counts[second.ID])
	}
}

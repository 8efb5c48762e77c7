// Package feed assembles the ordered post collection for the four read
// contexts: the global index, a group page, an author profile and the
// followed-authors feed. It only selects and filters; slicing is the
// paginator's job.
package feed

import (
	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/store"
)

type kind int

const (
	kindAll kind = iota
	kindByGroup
	kindByAuthor
	kindFollowedBy
)

// Selector names one feed context.
type Selector struct {
	kind     kind
	slug     string
	username string
	userID   uint
}

func All() Selector                     { return Selector{kind: kindAll} }
func ByGroup(slug string) Selector      { return Selector{kind: kindByGroup, slug: slug} }
func ByAuthor(username string) Selector { return Selector{kind: kindByAuthor, username: username} }
func FollowedBy(userID uint) Selector   { return Selector{kind: kindFollowedBy, userID: userID} }

// Feed is an assembled, not yet sliced, post sequence along with
// whatever entity the selector resolved on the way.
type Feed struct {
	Seq    pagination.Sequence
	Group  *models.Group // set for ByGroup
	Author *models.User  // set for ByAuthor
}

type Service struct {
	posts   store.Posts
	groups  store.Groups
	users   store.Users
	follows store.Follows
}

func NewService(posts store.Posts, groups store.Groups, users store.Users, follows store.Follows) *Service {
	return &Service{posts: posts, groups: groups, users: users, follows: follows}
}

// Assemble resolves the selector into an ordered sequence. Unknown
// slugs and usernames surface store.ErrNotFound; following nobody is
// not an error, just an empty feed.
func (s *Service) Assemble(sel Selector) (*Feed, error) {
	switch sel.kind {
	case kindByGroup:
		group, err := s.groups.BySlug(sel.slug)
		if err != nil {
			return nil, err
		}
		return &Feed{Seq: s.posts.ByGroup(group.ID), Group: group}, nil

	case kindByAuthor:
		author, err := s.users.ByUsername(sel.username)
		if err != nil {
			return nil, err
		}
		return &Feed{Seq: s.posts.ByAuthor(author.ID), Author: author}, nil

	case kindFollowedBy:
		authorIDs, err := s.follows.AuthorIDs(sel.userID)
		if err != nil {
			return nil, err
		}
		if len(authorIDs) == 0 {
			return &Feed{Seq: emptySequence{}}, nil
		}
		return &Feed{Seq: s.posts.ByAuthors(authorIDs)}, nil

	default:
		return &Feed{Seq: s.posts.All()}, nil
	}
}

// emptySequence backs the follow feed of a user who follows nobody.
type emptySequence struct{}

func (emptySequence) Count() (int64, error)                 { return 0, nil }
func (emptySequence) Slice(int, int) ([]models.Post, error) { return nil, nil }

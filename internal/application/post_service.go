package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
	repo "github.com/oksasatya/devconnect-api/internal/domain/repository"
)

// PostService owns the feed aggregate: posts with their like and comment
// sub-collections. Ownership checks happen here, before any write.
type PostService struct {
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

// Create stores a post with the author's name and avatar snapshotted at
// creation time.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	p := &entity.Post{
		UserID:    userID,
		Text:      text,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Likes:     []entity.Like{},
		Comments:  []entity.Comment{},
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	return s.Posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, id, requesterID string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != requesterID {
		return ErrForbidden
	}
	return s.Posts.Delete(ctx, id)
}

// Like prepends the user onto the post's likes; a second like by the same
// user fails and leaves the set unchanged.
func (s *PostService) Like(ctx context.Context, postID, userID string) ([]entity.Like, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, l := range p.Likes {
		if l.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}
	p.Likes = append([]entity.Like{{UserID: userID, CreatedAt: time.Now()}}, p.Likes...)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes the user's like; absent means the call fails.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) ([]entity.Like, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	found := false
	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, ErrNotLiked
	}
	p.Likes = kept
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment prepends a comment carrying the commenter's name/avatar
// snapshot.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) ([]entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	c := entity.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: time.Now(),
	}
	p.Comments = append([]entity.Comment{c}, p.Comments...)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, requesterID string) ([]entity.Comment, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if p.Comments[idx].UserID != requesterID {
		return nil, ErrForbidden
	}
	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

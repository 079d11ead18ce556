package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/domain"
	"github.com/vedran77/devlink/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostAuthor   = errors.New("only the post author can perform this action")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
)

// Notifier broadcasts feed events to connected clients.
type Notifier interface {
	NotifyNewPost(post *domain.Post)
	NotifyPostDeleted(postID primitive.ObjectID)
	NotifyLikes(postID primitive.ObjectID, likes []domain.Like)
	NotifyNewComment(postID primitive.ObjectID, comment *domain.Comment)
	NotifyCommentRemoved(postID primitive.ObjectID, commentID uuid.UUID)
}

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *PostService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreatePostInput struct {
	Text string `json:"text"`
}

type CommentInput struct {
	Text string `json:"text"`
}

// Create snapshots the author's name and avatar onto the new post. The
// snapshot is not kept in sync with later profile or user edits.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, input CreatePostInput) (*domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Text:     input.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewPost(post)
	}

	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyPostDeleted(postID)
	}

	return nil
}

// Like prepends a like entry. One like per user, enforced by the membership
// check rather than a storage constraint.
func (s *PostService) Like(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.HasLikeBy(userID) {
		return nil, ErrAlreadyLiked
	}

	like := domain.Like{UserID: userID, Date: time.Now()}
	post.Likes = append([]domain.Like{like}, post.Likes...)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLikes(post.ID, post.Likes)
	}

	return post.Likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.HasLikeBy(userID) {
		return nil, ErrNotLiked
	}

	for i, like := range post.Likes {
		if like.UserID == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			break
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLikes(post.ID, post.Likes)
	}

	return post.Likes, nil
}

// AddComment prepends a comment with a fresh identifier, snapshotting the
// commenter's name and avatar.
func (s *PostService) AddComment(ctx context.Context, userID, postID primitive.ObjectID, input CommentInput) (*domain.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	comment := domain.Comment{
		ID:     uuid.New(),
		UserID: userID,
		Text:   input.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}
	post.Comments = append([]domain.Comment{comment}, post.Comments...)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewComment(post.ID, &comment)
	}

	return post, nil
}

func (s *PostService) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID uuid.UUID) (*domain.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyCommentRemoved(post.ID, commentID)
	}

	return post, nil
}

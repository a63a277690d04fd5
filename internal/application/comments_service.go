package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	repo "github.com/oksasatya/go-classifieds-api/internal/domain/repository"
)

// CommentView is the response view of a comment. Author display fields
// are the snapshot taken when the comment was created.
type CommentView struct {
	Pk              int    `json:"pk"`
	Author          int    `json:"author"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorImage     string `json:"authorImage"`
	CreatedAt       int64  `json:"createdAt"`
	Text            string `json:"text"`
}

// CommentList groups an ad's comments with their count.
type CommentList struct {
	Count   int           `json:"count"`
	Results []CommentView `json:"results"`
}

// CreateOrUpdateComment carries the only mutable comment field.
type CreateOrUpdateComment struct {
	Text string `json:"text" binding:"required,min=8,max=64"`
}

// CommentsService owns comment CRUD scoped to a parent ad, with the
// same author-or-admin rule on mutations. Comments carry no
// attachment of their own.
type CommentsService struct {
	Comments repo.CommentRepository
	Ads      repo.AdRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
}

func NewCommentsService(comments repo.CommentRepository, ads repo.AdRepository, users repo.UserRepository, logger *logrus.Logger) *CommentsService {
	return &CommentsService{Comments: comments, Ads: ads, Users: users, Logger: logger}
}

func commentView(c *entity.Comment) CommentView {
	return CommentView{
		Pk:              c.ID,
		Author:          c.AuthorID,
		AuthorFirstName: c.AuthorFirstName,
		AuthorImage:     c.AuthorImage,
		CreatedAt:       c.CreatedAt,
		Text:            c.Text,
	}
}

// List returns the ad's comments. A missing ad is ErrNotFound; an ad
// with zero comments is an empty collection, not the not-found case.
func (s *CommentsService) List(ctx context.Context, adID int) (*CommentList, error) {
	if _, err := s.Ads.GetByID(ctx, adID); err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	comments, err := s.Comments.ListByAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	results := make([]CommentView, 0, len(comments))
	for i := range comments {
		results = append(results, commentView(&comments[i]))
	}
	return &CommentList{Count: len(results), Results: results}, nil
}

// Add creates a comment on the ad, snapshotting the acting account's
// first name and avatar into the record. The snapshot is never
// refreshed, even if the account changes later.
func (s *CommentsService) Add(ctx context.Context, actorEmail string, adID int, props CreateOrUpdateComment) (*CommentView, error) {
	if _, err := s.Ads.GetByID(ctx, adID); err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	comment := &entity.Comment{
		Text:            props.Text,
		CreatedAt:       time.Now().UnixMilli(),
		AuthorFirstName: actor.FirstName,
		AuthorImage:     actor.Image,
		AuthorID:        actor.ID,
		AdID:            adID,
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	out := commentView(comment)
	return &out, nil
}

// Remove deletes the comment after the ownership check. An absent
// comment (or one that belongs to a different ad) is ErrNotFound for
// any caller.
func (s *CommentsService) Remove(ctx context.Context, actorEmail string, adID, commentID int) error {
	comment, err := s.Comments.GetByID(ctx, commentID)
	if errors.Is(err, repo.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if comment.AdID != adID {
		return ErrNotFound
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return err
	}
	if !canModify(actor, comment.AuthorEmail) {
		return ErrForbidden
	}
	return s.Comments.Delete(ctx, commentID)
}

// Update replaces the comment text. The creation timestamp and the
// snapshotted author fields stay as they were.
func (s *CommentsService) Update(ctx context.Context, actorEmail string, props CreateOrUpdateComment, commentID, adID int) (*CommentView, error) {
	comment, err := s.Comments.GetByID(ctx, commentID)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if comment.AdID != adID {
		return nil, ErrNotFound
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, comment.AuthorEmail) {
		return nil, ErrForbidden
	}
	comment.Text = props.Text
	if err := s.Comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	out := commentView(comment)
	return &out, nil
}

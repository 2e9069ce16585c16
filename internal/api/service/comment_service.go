package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Create(ctx context.Context, authorID string, titleID, reviewID int64, in dto.CreateCommentDTO) (*models.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// checkReview resolves the parent review (scoped to its title) before the
// comment operation runs.
func (s *commentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.FindByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Create(ctx context.Context, authorID string, titleID, reviewID int64, in dto.CreateCommentDTO) (*models.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, in dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64) error {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, reviewID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

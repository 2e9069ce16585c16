package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewExists: a user may review a given title only once.
	ErrReviewExists = errors.New("you have already reviewed this title")
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Create(ctx context.Context, authorID string, titleID int64, in dto.CreateReviewDTO) (*models.Review, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// checkTitle resolves the parent before anything else runs, so a missing
// title short-circuits to not-found.
func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Create(ctx context.Context, authorID string, titleID int64, in dto.CreateReviewDTO) (*models.Review, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.FindByAuthorAndTitle(ctx, authorID, titleID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Concurrent duplicate creates lose the race at the unique index.
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// Reload with the author preloaded for the response representation.
	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, in dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	if err := s.reviewRepo.Delete(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

// ratingSubquery derives the average review score at read time. It is never
// cached or stored, so it always reflects current review state.
const ratingSubquery = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilters narrows the title list; zero values mean no constraint.
type TitleFilters struct {
	Genre    string // genre slug, exact
	Category string // category slug, exact
	Name     string // case-insensitive substring
	Year     int    // exact, 0 = unset
}

type TitleRepository interface {
	List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// List applies the recognized filters with AND semantics; anything else was
// already dropped by the handler, so combining filters only narrows.
func (r *titleRepository) List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filters.Genre != "" {
		q = q.Joins("JOIN genre_title gt ON gt.title_id = titles.id").
			Joins("JOIN genres g ON g.id = gt.genre_id").
			Where("g.slug = ?", filters.Genre)
	}
	if filters.Category != "" {
		q = q.Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filters.Category)
	}
	if filters.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != 0 {
		q = q.Where("titles.year = ?", filters.Year)
	}

	var total int64
	if err := q.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	var titles []models.Title
	offset := (page - 1) * pageSize
	err := q.Select(ratingSubquery).
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return titles, total, nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Select(ratingSubquery).
		Preload("Category").
		Preload("Genres").
		First(&title, "titles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Omit associations: genre changes go through ReplaceGenres.
	return r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	return nil
}

// Delete removes the title; reviews and their comments go with it via the
// FK cascade chain.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

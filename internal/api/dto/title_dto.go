package dto

import "reviewhub/internal/api/models"

// TitleWriteDTO for POST /api/v1/titles - the write representation accepts
// category and genre slugs rather than nested objects.
type TitleWriteDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required,pastyear"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required,max=50,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,max=50,slug"`
}

// TitleUpdateDTO for PATCH /api/v1/titles/:title_id - all fields optional
type TitleUpdateDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year" binding:"omitempty,pastyear"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=50,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,max=50,slug"`
}

// TitleResponse is the read representation: nested category/genres plus the
// derived average score (null while the title has no reviews).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleFromModel(t *models.Title) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, GenreFromModel(g))
	}

	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}

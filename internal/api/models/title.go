package models

import "time"

type Title struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null;size:256;index"`
	Year        int        `json:"year" gorm:"not null;index"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	CategoryID  *int64     `json:"-" gorm:"index"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// Rating is derived at read time from the AVG over the title's review
	// scores. It is never stored; the repository fills it with a subquery.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:genre_title;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}

package models

// explicit join model so the bulk loader can upsert rows directly (has its own id)
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"index;not null;uniqueIndex:idx_genre_title_pair"`
	GenreID int64 `json:"genre_id" gorm:"index;not null;uniqueIndex:idx_genre_title_pair"`
}

func (GenreTitle) TableName() string {
	return "genre_title"
}

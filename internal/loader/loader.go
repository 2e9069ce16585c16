// Package loader implements the one-shot CSV import that seeds the
// genre_title association table.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

// Upserter inserts an association if it does not exist yet.
type Upserter interface {
	Upsert(ctx context.Context, gt *models.GenreTitle) (created bool, err error)
}

type gormUpserter struct {
	db *gorm.DB
}

func NewGormUpserter(db *gorm.DB) Upserter {
	return &gormUpserter{db: db}
}

func (u *gormUpserter) Upsert(ctx context.Context, gt *models.GenreTitle) (bool, error) {
	result := u.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(gt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Result tallies processed rows: All counts successful upserts, Created the
// subset that inserted a new association.
type Result struct {
	All     int
	Created int
}

// LoadGenreTitle reads a comma-delimited UTF-8 CSV with a header naming the
// association columns (title_id, genre_id, optionally id) and upserts each
// row. Rows that fail to parse or reference a missing title or genre are
// skipped without aborting the batch; any other database error aborts.
func LoadGenreTitle(ctx context.Context, r io.Reader, up Upserter) (Result, error) {
	var res Result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	titleCol, okTitle := cols["title_id"]
	genreCol, okGenre := cols["genre_id"]
	if !okTitle || !okGenre {
		return res, fmt.Errorf("csv header must contain title_id and genre_id, got %v", header)
	}
	idCol, hasID := cols["id"]

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, keep going.
			continue
		}
		if len(record) <= titleCol || len(record) <= genreCol {
			continue
		}

		titleID, err := strconv.ParseInt(record[titleCol], 10, 64)
		if err != nil {
			continue
		}
		genreID, err := strconv.ParseInt(record[genreCol], 10, 64)
		if err != nil {
			continue
		}

		gt := &models.GenreTitle{TitleID: titleID, GenreID: genreID}
		if hasID && len(record) > idCol {
			if id, err := strconv.ParseInt(record[idCol], 10, 64); err == nil {
				gt.ID = id
			}
		}

		created, err := up.Upsert(ctx, gt)
		if err != nil {
			// A missing title or genre only invalidates this row.
			if repository.IsForeignKeyViolation(err) {
				continue
			}
			return res, fmt.Errorf("upsert title %d genre %d: %w", gt.TitleID, gt.GenreID, err)
		}
		res.All++
		if created {
			res.Created++
		}
	}

	return res, nil
}

// LoadGenreTitleFile runs LoadGenreTitle against a file path.
func LoadGenreTitleFile(ctx context.Context, db *gorm.DB, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	return LoadGenreTitle(ctx, f, NewGormUpserter(db))
}

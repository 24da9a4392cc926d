package store

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
)

// suggestionRow is the ORM mapping. Watched is persisted as a 0/1 integer,
// matching the historical sqlite schema; List normalizes it back to a bool.
type suggestionRow struct {
	ID          string  `gorm:"column:id;primaryKey"`
	TMDBID      int64   `gorm:"column:tmdbId"`
	Type        string  `gorm:"column:type"`
	Title       string  `gorm:"column:title"`
	Overview    string  `gorm:"column:overview"`
	PosterPath  string  `gorm:"column:posterPath"`
	ReleaseDate string  `gorm:"column:releaseDate"`
	Rating      float64 `gorm:"column:rating"`
	AddedAt     string  `gorm:"column:addedAt"`
	Watched     int     `gorm:"column:watched"`
}

func (suggestionRow) TableName() string { return "suggestions" }

// SQLiteStore implements Store on an embedded sqlite file through gorm.
type SQLiteStore struct {
	db *gorm.DB

	// NewID generates suggestion ids. Overridable for tests.
	NewID func() string
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := db.AutoMigrate(&suggestionRow{}); err != nil {
		return nil, storageErr("open", err)
	}
	return &SQLiteStore{db: db, NewID: defaultNewID}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.Suggestion, error) {
	var rows []suggestionRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, storageErr("list", err)
	}
	out := make([]model.Suggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Suggestion{
			ID:          r.ID,
			TMDBID:      r.TMDBID,
			Type:        r.Type,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			Rating:      r.Rating,
			AddedAt:     r.AddedAt,
			Watched:     r.Watched != 0,
		})
	}
	return out, nil
}

func (s *SQLiteStore) Add(ctx context.Context, payload model.NewSuggestion) error {
	if err := checkPayload(payload); err != nil {
		return err
	}
	rec := newRecord(payload, s.NewID())
	row := suggestionRow{
		ID:          rec.ID,
		TMDBID:      rec.TMDBID,
		Type:        rec.Type,
		Title:       rec.Title,
		Overview:    rec.Overview,
		PosterPath:  rec.PosterPath,
		ReleaseDate: rec.ReleaseDate,
		Rating:      rec.Rating,
		AddedAt:     rec.AddedAt,
		Watched:     0,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return storageErr("add", err)
	}
	return nil
}

func (s *SQLiteStore) MarkWatched(ctx context.Context, id string) error {
	var row suggestionRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("mark_watched", err)
	}
	err = s.db.WithContext(ctx).Model(&suggestionRow{}).Where("id = ?", id).Update("watched", 1).Error
	if err != nil {
		return storageErr("mark_watched", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&suggestionRow{}, "id = ?", id).Error; err != nil {
		return storageErr("remove", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

package store

import (
	"context"
	"errors"

	"diary/internal/config"
	"diary/internal/db"
	"diary/internal/models"
	"diary/internal/pkg/supabase"

	"gorm.io/gorm"
)

// DiaryStore appends analyzed diaries. There is no read, update or delete path.
type DiaryStore interface {
	Insert(ctx context.Context, diary *models.Diary) error
}

var ErrNoStore = errors.New("no diary store configured: set SUPABASE_URL and SUPABASE_SERVICE_KEY, or DATABASE_URL")

type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Insert(ctx context.Context, diary *models.Diary) error {
	return gorm.G[models.Diary](s.DB).Create(ctx, diary)
}

type SupabaseStore struct {
	Client *supabase.Client
}

func (s *SupabaseStore) Insert(ctx context.Context, diary *models.Diary) error {
	return s.Client.Insert(ctx, diary.TableName(), diary)
}

// FromConfig prefers the Supabase REST endpoint and falls back to a direct
// Postgres connection.
func FromConfig(cfg *config.Config) (DiaryStore, error) {
	if cfg.SupabaseURL != "" || cfg.SupabaseServiceKey != "" {
		client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		if err != nil {
			return nil, err
		}
		return &SupabaseStore{Client: client}, nil
	}

	if cfg.DatabaseURL != "" {
		conn, err := db.InitDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.Migrate(conn); err != nil {
				return nil, err
			}
		}
		return &GormStore{DB: conn}, nil
	}

	return nil, ErrNoStore
}

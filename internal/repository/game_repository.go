package repository

import (
	"context"

	"github.com/l9kyuu/gamepanel-api/internal/models"
	"gorm.io/gorm"
)

// GameRepository is the read-only adapter over the games table. Catalog
// writes happen elsewhere in the panel; reporting never mutates records.
type GameRepository interface {
	FindAll(ctx context.Context) ([]models.Game, error)
	FindCreatedBetween(ctx context.Context, dateRange models.DateRange) ([]models.Game, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) FindAll(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) FindCreatedBetween(ctx context.Context, dateRange models.DateRange) ([]models.Game, error) {
	start, end := dateRange.Bounds()

	var games []models.Game
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("title ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

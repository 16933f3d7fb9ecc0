package models

import (
	"time"
)

// Game represents a catalog entry. The reporting API only reads games;
// creation and maintenance belong to the panel that owns the table.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Genre     string    `gorm:"index" json:"genre"`
	Platform  string    `json:"platform"` // comma-separated platform names
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Game
func (Game) TableName() string {
	return "games"
}

// StatusLabel returns the display label used across every report output.
func (g *Game) StatusLabel() string {
	if g.IsActive {
		return "Active"
	}
	return "Inactive"
}

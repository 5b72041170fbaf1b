package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Category     string         `json:"category"`
	Image        string         `json:"image"`
	Price        float64        `gorm:"not null" json:"price"`
	Brand        string         `json:"brand"`
	Rating       float64        `json:"rating"`
	NumReviews   int            `json:"num_reviews"`
	CountInStock int            `json:"count_in_stock"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

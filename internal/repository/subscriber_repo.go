package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/brandforge/internal/models"
)

// SubscriberRepository is the GORM-backed services.SubscriberStore.
type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Subscribe(ctx context.Context, sub *models.Subscriber) error {
	sub.Email = normalizeEmail(sub.Email)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(sub).Error
	return translate(err)
}

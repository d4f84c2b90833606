package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/brandforge/internal/models"
)

// BrandKitRepository is the GORM-backed services.BrandKitStore.
type BrandKitRepository struct {
	db *gorm.DB
}

func NewBrandKitRepository(db *gorm.DB) *BrandKitRepository {
	return &BrandKitRepository{db: db}
}

func (r *BrandKitRepository) Create(ctx context.Context, kit *models.BrandKit) error {
	return translate(r.db.WithContext(ctx).Omit("Company").Create(kit).Error)
}

func (r *BrandKitRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]models.BrandKit, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.BrandKit{}).Where("company_id = ?", companyID)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	page := scoped().Order("created_at DESC")
	if limit > 0 {
		page = page.Limit(limit).Offset(offset)
	}

	kits := []models.BrandKit{}
	if err := page.Find(&kits).Error; err != nil {
		return nil, 0, translate(err)
	}
	return kits, total, nil
}

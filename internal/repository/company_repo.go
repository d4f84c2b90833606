package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

// CompanyRepository is the GORM-backed services.CompanyStore.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) FindMembership(ctx context.Context, userID, companyID uuid.UUID) (models.CompanyMember, error) {
	var member models.CompanyMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&member).Error
	return member, translate(err)
}

func (r *CompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return count > 0, nil
}

func (r *CompanyRepository) WithinTx(ctx context.Context, fn func(services.CompanyWriter) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&companyWriter{tx: tx})
	})
}

func (r *CompanyRepository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.CompanyMember, error) {
	var members []models.CompanyMember
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&members).Error
	return members, translate(err)
}

func (r *CompanyRepository) FindBySlug(ctx context.Context, slug string) (models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Members.User").
		Where("slug = ?", slug).
		First(&company).Error
	return company, translate(err)
}

type companyWriter struct {
	tx *gorm.DB
}

func (w *companyWriter) InsertCompany(ctx context.Context, company *models.Company) error {
	return translate(w.tx.WithContext(ctx).Omit("Members").Create(company).Error)
}

func (w *companyWriter) InsertMember(ctx context.Context, member *models.CompanyMember) error {
	return translate(w.tx.WithContext(ctx).Omit("Company", "User").Create(member).Error)
}

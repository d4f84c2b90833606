package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/utils"
)

const maxSlugAttempts = 100

// NewCompany is the input for creating a company.
type NewCompany struct {
	Name     string
	Industry *string
	Website  *string
}

// CompanyWithRole is a company as seen by one of its members.
type CompanyWithRole struct {
	models.Company
	Role     models.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// CompanyService owns companies, memberships and access checks.
type CompanyService struct {
	store CompanyStore
}

func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store}
}

// VerifyAccess returns ErrUnauthorized unless userID is a member of companyID.
func (s *CompanyService) VerifyAccess(ctx context.Context, userID, companyID uuid.UUID) error {
	_, err := s.membership(ctx, userID, companyID)
	return err
}

// HasRole reports whether the member's role is at least required.
// Non-members never have a role.
func (s *CompanyService) HasRole(ctx context.Context, userID, companyID uuid.UUID, required models.Role) (bool, error) {
	member, err := s.membership(ctx, userID, companyID)
	if errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.Role.AtLeast(required), nil
}

// HasRoleBySlug is HasRole for routes addressed by slug. An unknown slug
// yields false.
func (s *CompanyService) HasRoleBySlug(ctx context.Context, userID uuid.UUID, slug string, required models.Role) (bool, error) {
	company, err := s.store.FindBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find company: %w", err)
	}
	return s.HasRole(ctx, userID, company.ID, required)
}

func (s *CompanyService) membership(ctx context.Context, userID, companyID uuid.UUID) (models.CompanyMember, error) {
	member, err := s.store.FindMembership(ctx, userID, companyID)
	if errors.Is(err, ErrNotFound) {
		return models.CompanyMember{}, ErrUnauthorized
	}
	if err != nil {
		return models.CompanyMember{}, fmt.Errorf("find membership: %w", err)
	}
	return member, nil
}

// Create stores a company with the creator as OWNER. The slug is derived
// from the name; taken slugs get a numeric suffix. A slug claimed by a
// concurrent request between probe and insert surfaces as ErrDuplicate
// and the next suffix is tried.
func (s *CompanyService) Create(ctx context.Context, userID uuid.UUID, in NewCompany) (*models.Company, error) {
	base := utils.Slugify(in.Name)

	n := 0
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug := utils.SlugCandidate(base, n)

		exists, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if exists {
			n++
			continue
		}

		company := &models.Company{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Name:      in.Name,
			Slug:      slug,
			Industry:  in.Industry,
			Website:   in.Website,
		}

		err = s.store.WithinTx(ctx, func(w CompanyWriter) error {
			if err := w.InsertCompany(ctx, company); err != nil {
				return err
			}
			return w.InsertMember(ctx, &models.CompanyMember{
				UserID:    userID,
				CompanyID: company.ID,
				Role:      models.RoleOwner,
			})
		})
		if errors.Is(err, ErrDuplicate) {
			log.Printf("[Company] slug %q claimed concurrently, retrying", slug)
			n++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create company: %w", err)
		}

		log.Printf("[Company] created %s (%s) owner=%s", company.Slug, company.ID, userID)
		return company, nil
	}

	return nil, ErrSlugExhausted
}

// ListForUser returns the user's companies, most recently joined first.
func (s *CompanyService) ListForUser(ctx context.Context, userID uuid.UUID) ([]CompanyWithRole, error) {
	members, err := s.store.ListMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]CompanyWithRole, 0, len(members))
	for _, m := range members {
		if m.Company == nil {
			continue
		}
		out = append(out, CompanyWithRole{
			Company:  *m.Company,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return out, nil
}

// GetBySlug returns the company with its members. Unknown slugs and
// companies the user does not belong to both yield ErrUnauthorized.
func (s *CompanyService) GetBySlug(ctx context.Context, userID uuid.UUID, slug string) (*models.Company, error) {
	company, err := s.store.FindBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find company: %w", err)
	}

	if err := s.VerifyAccess(ctx, userID, company.ID); err != nil {
		return nil, err
	}
	return &company, nil
}

// Members lists the roster of the company identified by slug.
func (s *CompanyService) Members(ctx context.Context, userID uuid.UUID, slug string) ([]models.CompanyMember, error) {
	company, err := s.GetBySlug(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	return company.Members, nil
}

// Package testutil provides in-memory stand-ins for stores and model
// integrations.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

// CompanyStore is an in-memory services.CompanyStore. Transactions stage
// writes and only commit them when the callback succeeds.
type CompanyStore struct {
	mu        sync.Mutex
	companies map[uuid.UUID]models.Company
	members   []models.CompanyMember
	users     map[uuid.UUID]models.User

	// FailMemberInsert is returned by every member insert when set.
	FailMemberInsert error
	// RaceSlugs are claimed by a simulated concurrent writer the first time
	// an insert tries them, after the existence probe already passed.
	RaceSlugs map[string]bool
	// FindBySlugCalls counts FindBySlug lookups.
	FindBySlugCalls int
}

func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		companies: map[uuid.UUID]models.Company{},
		users:     map[uuid.UUID]models.User{},
		RaceSlugs: map[string]bool{},
	}
}

// AddUser seeds a user.
func (s *CompanyStore) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return u
}

// AddCompany seeds a company with the given slug.
func (s *CompanyStore) AddCompany(name, slug string) models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Company{BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: time.Now()}, Name: name, Slug: slug}
	s.companies[c.ID] = c
	return c
}

// AddMember seeds a membership.
func (s *CompanyStore) AddMember(userID, companyID uuid.UUID, role models.Role, joinedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, models.CompanyMember{
		ID:        uuid.New(),
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  joinedAt,
	})
}

// Companies returns a snapshot of stored companies.
func (s *CompanyStore) Companies() []models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	return out
}

// MemberCount returns the number of stored memberships.
func (s *CompanyStore) MemberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

func (s *CompanyStore) FindMembership(_ context.Context, userID, companyID uuid.UUID) (models.CompanyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.UserID == userID && m.CompanyID == companyID {
			return m, nil
		}
	}
	return models.CompanyMember{}, services.ErrNotFound
}

func (s *CompanyStore) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slugTaken(slug), nil
}

func (s *CompanyStore) slugTaken(slug string) bool {
	for _, c := range s.companies {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func (s *CompanyStore) WithinTx(_ context.Context, fn func(services.CompanyWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &stagedWriter{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	for _, c := range tx.companies {
		s.companies[c.ID] = c
	}
	s.members = append(s.members, tx.members...)
	return nil
}

func (s *CompanyStore) ListMemberships(_ context.Context, userID uuid.UUID) ([]models.CompanyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.CompanyMember
	for _, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if c, ok := s.companies[m.CompanyID]; ok {
			m.Company = &c
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].JoinedAt.After(out[j].JoinedAt)
	})
	return out, nil
}

func (s *CompanyStore) FindBySlug(_ context.Context, slug string) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FindBySlugCalls++

	for _, c := range s.companies {
		if c.Slug != slug {
			continue
		}
		c.Members = nil
		for _, m := range s.members {
			if m.CompanyID != c.ID {
				continue
			}
			if u, ok := s.users[m.UserID]; ok {
				m.User = &u
			}
			c.Members = append(c.Members, m)
		}
		return c, nil
	}
	return models.Company{}, services.ErrNotFound
}

// stagedWriter runs with the store lock held by WithinTx.
type stagedWriter struct {
	store     *CompanyStore
	companies []models.Company
	members   []models.CompanyMember
}

func (w *stagedWriter) InsertCompany(_ context.Context, c *models.Company) error {
	if w.store.RaceSlugs[c.Slug] {
		delete(w.store.RaceSlugs, c.Slug)
		rival := models.Company{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "rival", Slug: c.Slug}
		w.store.companies[rival.ID] = rival
		return services.ErrDuplicate
	}
	if w.store.slugTaken(c.Slug) {
		return services.ErrDuplicate
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	w.companies = append(w.companies, *c)
	return nil
}

func (w *stagedWriter) InsertMember(_ context.Context, m *models.CompanyMember) error {
	if w.store.FailMemberInsert != nil {
		return w.store.FailMemberInsert
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	w.members = append(w.members, *m)
	return nil
}

// BrandKitStore is an in-memory services.BrandKitStore.
type BrandKitStore struct {
	mu   sync.Mutex
	kits []models.BrandKit

	// Err fails every Create when set.
	Err error
}

func NewBrandKitStore() *BrandKitStore {
	return &BrandKitStore{}
}

// Kits returns a snapshot of stored kits.
func (s *BrandKitStore) Kits() []models.BrandKit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BrandKit(nil), s.kits...)
}

func (s *BrandKitStore) Create(_ context.Context, kit *models.BrandKit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if kit.ID == uuid.Nil {
		kit.ID = uuid.New()
	}
	if kit.CreatedAt.IsZero() {
		kit.CreatedAt = time.Now()
	}
	s.kits = append(s.kits, *kit)
	return nil
}

func (s *BrandKitStore) ListByCompany(_ context.Context, companyID uuid.UUID, limit, offset int) ([]models.BrandKit, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.BrandKit
	for _, k := range s.kits {
		if k.CompanyID == companyID {
			matched = append(matched, k)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.BrandKit{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

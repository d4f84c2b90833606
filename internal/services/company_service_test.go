package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/testutil"
)

func TestCreateCompanyDisambiguatesSlugs(t *testing.T) {
	store := testutil.NewCompanyStore()
	svc := services.NewCompanyService(store)
	ctx := context.Background()
	owner := uuid.New()

	want := []string{"acme-inc", "acme-inc-1", "acme-inc-2"}
	for _, slug := range want {
		company, err := svc.Create(ctx, owner, services.NewCompany{Name: "Acme, Inc.!!"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if company.Slug != slug {
			t.Fatalf("expected slug %q, got %q", slug, company.Slug)
		}

		member, err := store.FindMembership(ctx, owner, company.ID)
		if err != nil {
			t.Fatalf("owner membership missing: %v", err)
		}
		if member.Role != models.RoleOwner {
			t.Fatalf("expected OWNER, got %s", member.Role)
		}
	}
}

func TestCreateCompanyRetriesAfterConcurrentClaim(t *testing.T) {
	store := testutil.NewCompanyStore()
	store.RaceSlugs["acme"] = true
	svc := services.NewCompanyService(store)

	company, err := svc.Create(context.Background(), uuid.New(), services.NewCompany{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if company.Slug != "acme-1" {
		t.Fatalf("expected acme-1 after losing the race, got %q", company.Slug)
	}

	slugs := map[string]int{}
	for _, c := range store.Companies() {
		slugs[c.Slug]++
	}
	if slugs["acme"] != 1 || slugs["acme-1"] != 1 {
		t.Fatalf("expected one company per slug, got %v", slugs)
	}
}

func TestCreateCompanyIsAtomic(t *testing.T) {
	store := testutil.NewCompanyStore()
	store.FailMemberInsert = errors.New("insert member: connection reset")
	svc := services.NewCompanyService(store)

	if _, err := svc.Create(context.Background(), uuid.New(), services.NewCompany{Name: "Orphan"}); err == nil {
		t.Fatal("expected error")
	}
	if n := len(store.Companies()); n != 0 {
		t.Fatalf("expected no company after failed membership insert, got %d", n)
	}
	if n := store.MemberCount(); n != 0 {
		t.Fatalf("expected no memberships, got %d", n)
	}
}

func TestCreateCompanyEmptySlugFallsBack(t *testing.T) {
	svc := services.NewCompanyService(testutil.NewCompanyStore())

	company, err := svc.Create(context.Background(), uuid.New(), services.NewCompany{Name: "!!!"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if company.Slug != "company" {
		t.Fatalf("expected fallback slug, got %q", company.Slug)
	}
}

func TestVerifyAccess(t *testing.T) {
	store := testutil.NewCompanyStore()
	company := store.AddCompany("Acme", "acme")
	member := uuid.New()
	store.AddMember(member, company.ID, models.RoleViewer, time.Now())
	svc := services.NewCompanyService(store)

	if err := svc.VerifyAccess(context.Background(), member, company.ID); err != nil {
		t.Fatalf("member refused: %v", err)
	}
	if err := svc.VerifyAccess(context.Background(), uuid.New(), company.ID); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHasRole(t *testing.T) {
	store := testutil.NewCompanyStore()
	company := store.AddCompany("Acme", "acme")
	viewer, owner := uuid.New(), uuid.New()
	store.AddMember(viewer, company.ID, models.RoleViewer, time.Now())
	store.AddMember(owner, company.ID, models.RoleOwner, time.Now())
	svc := services.NewCompanyService(store)

	tests := []struct {
		name     string
		user     uuid.UUID
		required models.Role
		want     bool
	}{
		{"viewer refused admin", viewer, models.RoleAdmin, false},
		{"viewer allowed viewer", viewer, models.RoleViewer, true},
		{"owner allowed viewer", owner, models.RoleViewer, true},
		{"owner allowed owner", owner, models.RoleOwner, true},
		{"non-member refused viewer", uuid.New(), models.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasRole(context.Background(), tt.user, company.ID, tt.required)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("HasRole = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasRoleBySlugUnknownSlug(t *testing.T) {
	svc := services.NewCompanyService(testutil.NewCompanyStore())

	ok, err := svc.HasRoleBySlug(context.Background(), uuid.New(), "missing", models.RoleViewer)
	if err != nil || ok {
		t.Fatalf("expected false without error, got %v, %v", ok, err)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	store := testutil.NewCompanyStore()
	user := uuid.New()
	older := store.AddCompany("Older", "older")
	newer := store.AddCompany("Newer", "newer")
	other := store.AddCompany("Other", "other")
	store.AddMember(user, older.ID, models.RoleOwner, time.Now().Add(-time.Hour))
	store.AddMember(user, newer.ID, models.RoleViewer, time.Now())
	store.AddMember(uuid.New(), other.ID, models.RoleOwner, time.Now())

	got, err := services.NewCompanyService(store).ListForUser(context.Background(), user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}
	if got[0].Slug != "newer" || got[0].Role != models.RoleViewer {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].Slug != "older" || got[1].Role != models.RoleOwner {
		t.Fatalf("unexpected second entry %+v", got[1])
	}
}

func TestGetBySlug(t *testing.T) {
	store := testutil.NewCompanyStore()
	user := store.AddUser(models.User{Email: "owner@example.com"})
	company := store.AddCompany("Acme", "acme")
	store.AddMember(user.ID, company.ID, models.RoleOwner, time.Now())
	svc := services.NewCompanyService(store)
	ctx := context.Background()

	got, err := svc.GetBySlug(ctx, user.ID, "acme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].User == nil || got.Members[0].User.Email != "owner@example.com" {
		t.Fatalf("expected member list with user, got %+v", got.Members)
	}

	if _, err := svc.GetBySlug(ctx, uuid.New(), "acme"); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("outsider: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.GetBySlug(ctx, user.ID, "missing"); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("missing slug: expected ErrUnauthorized, got %v", err)
	}
}

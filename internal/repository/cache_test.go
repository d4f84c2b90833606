package repository

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

func TestCachedCompanyStoreServesRepeatLookups(t *testing.T) {
	inner := testutil.NewCompanyStore()
	company := inner.AddCompany("Acme", "acme")
	store := NewCachedCompanyStore(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := store.FindBySlug(ctx, "acme")
		if err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
		if got.ID != company.ID {
			t.Fatalf("unexpected company %v", got.ID)
		}
	}

	if inner.FindBySlugCalls != 1 {
		t.Fatalf("expected one store call, got %d", inner.FindBySlugCalls)
	}
}

func TestCachedCompanyStoreDoesNotCacheMisses(t *testing.T) {
	inner := testutil.NewCompanyStore()
	store := NewCachedCompanyStore(inner, time.Minute)
	ctx := context.Background()

	if _, err := store.FindBySlug(ctx, "acme"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	inner.AddCompany("Acme", "acme")
	if _, err := store.FindBySlug(ctx, "acme"); err != nil {
		t.Fatalf("expected company after creation, got %v", err)
	}
}

func TestCachedCompanyStorePassesThroughOtherMethods(t *testing.T) {
	inner := testutil.NewCompanyStore()
	company := inner.AddCompany("Acme", "acme")
	user := uuid.New()
	inner.AddMember(user, company.ID, models.RoleAdmin, time.Now())

	svc := services.NewCompanyService(NewCachedCompanyStore(inner, time.Minute))

	ok, err := svc.HasRoleBySlug(context.Background(), user, "acme", models.RoleAdmin)
	if err != nil || !ok {
		t.Fatalf("expected admin access, got %v, %v", ok, err)
	}
}

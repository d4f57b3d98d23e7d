package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

func newTestStylists(t *testing.T) (StylistService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	// Disabled cache: reads miss-through to the repo.
	cache := redis.NewContextCache(nil, "stylist:context:", 0)
	return NewStylistService(repo, cache, zap.NewNop()), repo
}

func TestStylistCRUD(t *testing.T) {
	svc, _ := newTestStylists(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStylistRequest{
		DisplayName: "Carmen", Phone: "34600333444", Color: "#a855f7",
	}, "admin")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !created.IsActive {
		t.Error("new stylist should start active")
	}

	name := "Carmen López"
	active := false
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateStylistRequest{
		DisplayName: &name, IsActive: &active,
	}, "admin")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.DisplayName != name || updated.IsActive {
		t.Errorf("updated = %+v", updated)
	}

	// Inactive stylists drop out of the default listing.
	list, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("active listing has %d entries, want 0", len(list))
	}
	list, err = svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("full listing has %d entries, want 1", len(list))
	}

	if err := svc.Delete(ctx, created.ID, "admin"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrStylistNotFound) {
		t.Fatalf("GetByID after delete = %v, want ErrStylistNotFound", err)
	}
}

func TestStylistContextFallsThroughDisabledCache(t *testing.T) {
	svc, _ := newTestStylists(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateStylistRequest{DisplayName: "Carmen"}, "admin")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	sc, err := svc.Context(ctx, created.ID)
	if err != nil {
		t.Fatalf("Context error: %v", err)
	}
	if sc.ID != created.ID || sc.DisplayName != "Carmen" || !sc.IsActive {
		t.Errorf("context = %+v", sc)
	}

	if _, err := svc.Context(ctx, "no-such-id"); !errors.Is(err, ErrStylistNotFound) {
		t.Fatalf("Context(unknown) = %v, want ErrStylistNotFound", err)
	}
}

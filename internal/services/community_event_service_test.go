package services

import (
	"context"
	"testing"
	"time"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/db/repositories"
	"campus-hub/agora/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCommunityEventFixture(t *testing.T) *CommunityEventService {
	t.Helper()

	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := orm.AutoMigrate(&entities.CommunityEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mgr := cache.New[entities.CommunityEvent](
		repositories.NewCommunityEventRepository(orm), common.NewMemoryCache(),
		cache.Config[entities.CommunityEvent]{
			Singular: "community_event",
			Plural:   "community_events",
			IDOf:     func(e *entities.CommunityEvent) int64 { return e.ID },
		})
	return NewCommunityEventService(mgr)
}

func TestCommunityEventCreateSetsOwner(t *testing.T) {
	ctx := context.Background()
	svc := newCommunityEventFixture(t)

	event, err := svc.Create(ctx, 5, &entities.CommunityEvent{
		Title: "Rust meetup",
		Date:  time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.AccountID != 5 {
		t.Errorf("owner must come from the actor, got %d", event.AccountID)
	}
}

func TestCommunityEventOwnershipGating(t *testing.T) {
	ctx := context.Background()
	svc := newCommunityEventFixture(t)

	event, err := svc.Create(ctx, 5, &entities.CommunityEvent{Title: "Rust meetup", Date: time.Now()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, 6, event.ID, cache.Patch{"title": "hijacked"}); !constants.IsForbidden(err) {
		t.Errorf("non-owner update must be forbidden, got %v", err)
	}
	if _, err := svc.Delete(ctx, 6, event.ID); !constants.IsForbidden(err) {
		t.Errorf("non-owner delete must be forbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, 5, event.ID, cache.Patch{"title": "Go meetup"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Go meetup" {
		t.Errorf("title: got %q", updated.Title)
	}

	deleted, err := svc.Delete(ctx, 5, event.ID)
	if err != nil || !deleted {
		t.Fatalf("owner delete: deleted=%v err=%v", deleted, err)
	}
}

func TestCommunityEventOwnershipNotPatchable(t *testing.T) {
	ctx := context.Background()
	svc := newCommunityEventFixture(t)

	event, err := svc.Create(ctx, 5, &entities.CommunityEvent{Title: "Rust meetup", Date: time.Now()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, 5, event.ID, cache.Patch{"account_id": int64(99), "title": "renamed"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AccountID != 5 {
		t.Errorf("ownership must not be patchable, got %d", updated.AccountID)
	}
}

func TestCommunityEventUpdateAbsent(t *testing.T) {
	ctx := context.Background()
	svc := newCommunityEventFixture(t)

	updated, err := svc.Update(ctx, 5, 404, cache.Patch{"title": "x"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for absent event, got %+v", updated)
	}
}

package repositories

import (
	"context"
	"testing"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"
)

func TestAccountCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	created, err := repo.Create(ctx, &entities.Account{
		Login:       "zx",
		DisplayName: "Zed Xavier",
		Level:       4.2,
		CampusName:  "Lisboa",
		Favorites:   []string{"Unix", "Algorithms"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Login != "zx" {
		t.Fatalf("unexpected account: %+v", byID)
	}
	if len(byID.Favorites) != 2 || byID.Favorites[0] != "Unix" {
		t.Errorf("favorites must round-trip through the JSON column, got %v", byID.Favorites)
	}

	byLogin, err := repo.GetByKey(ctx, "zx")
	if err != nil {
		t.Fatalf("get by login: %v", err)
	}
	if byLogin == nil || byLogin.ID != created.ID {
		t.Fatalf("unexpected account by login: %+v", byLogin)
	}

	deleted, err := repo.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if gone, _ := repo.GetByID(ctx, created.ID); gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestAccountDuplicateLoginConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	if _, err := repo.Create(ctx, &entities.Account{Login: "zx"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := repo.Create(ctx, &entities.Account{Login: "zx"})
	if !constants.IsConflict(err) {
		t.Errorf("expected a conflict, got %v", err)
	}
}

func TestAccountPartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	created, err := repo.Create(ctx, &entities.Account{
		Login:       "zx",
		DisplayName: "Zed Xavier",
		Level:       1.0,
		Location:    "c1r1s1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, cache.Patch{
		"level":     5.0,
		"favorites": []string{"Shell"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Level != 5.0 {
		t.Errorf("level: got %v", updated.Level)
	}
	if len(updated.Favorites) != 1 || updated.Favorites[0] != "Shell" {
		t.Errorf("favorites: got %v", updated.Favorites)
	}
	// untouched fields survive a partial update
	if updated.DisplayName != "Zed Xavier" || updated.Location != "c1r1s1" {
		t.Errorf("unpatched fields must survive, got %+v", updated)
	}
}

func TestAccountUpdateAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	updated, err := repo.Update(ctx, 404, cache.Patch{"level": 2.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for absent id, got %+v", updated)
	}
}

func TestAccountGetAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	if a, err := repo.GetByID(ctx, 404); err != nil || a != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", a, err)
	}
	if a, err := repo.GetByKey(ctx, "ghost"); err != nil || a != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", a, err)
	}
}

func TestAccountFavoritesCappedOnCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	favorites := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		favorites = append(favorites, string(rune('a'+i)))
	}

	created, err := repo.Create(ctx, &entities.Account{Login: "zx", Favorites: favorites})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Favorites) != constants.MaxFavoriteSkills {
		t.Errorf("expected %d favorites, got %d", constants.MaxFavoriteSkills, len(created.Favorites))
	}
}

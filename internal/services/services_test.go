package services

import (
	"context"
	"testing"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/db/repositories"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockIntraAPI is a func-field stub of the upstream API surface
type mockIntraAPI struct {
	getUserByLogin     func(ctx context.Context, login string) (*dtos.IntraUser, int, error)
	getUserProjects    func(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error)
	getCampusLocations func(ctx context.Context, campusID, page int) ([]dtos.CampusLocation, int, error)
	listCampuses       func(ctx context.Context, page int) ([]dtos.Campus, int, error)
}

func (m *mockIntraAPI) GetUserByLogin(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
	return m.getUserByLogin(ctx, login)
}

func (m *mockIntraAPI) GetUserProjects(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
	return m.getUserProjects(ctx, login)
}

func (m *mockIntraAPI) GetCampusLocations(ctx context.Context, campusID, page int) ([]dtos.CampusLocation, int, error) {
	return m.getCampusLocations(ctx, campusID, page)
}

func (m *mockIntraAPI) ListCampuses(ctx context.Context, page int) ([]dtos.Campus, int, error) {
	return m.listCampuses(ctx, page)
}

func newTestORM(t *testing.T) *gorm.DB {
	t.Helper()

	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := orm.AutoMigrate(&entities.Account{}, &entities.Project{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return orm
}

// newTestManagers wires account and project managers over an in-memory
// database and cache, mirroring the production wiring.
func newTestManagers(t *testing.T) (*cache.Manager[entities.Account], *cache.Manager[entities.Project], common.Cache) {
	t.Helper()

	orm := newTestORM(t)
	cacheStore := common.NewMemoryCache()

	accounts := cache.New[entities.Account](
		repositories.NewAccountRepository(orm), cacheStore,
		cache.Config[entities.Account]{
			Singular: "user",
			Plural:   "users",
			IDOf:     func(a *entities.Account) int64 { return a.ID },
			KeyName:  "login",
			KeyOf:    func(a *entities.Account) string { return a.Login },
		})

	projects := cache.New[entities.Project](
		repositories.NewProjectRepository(orm), cacheStore,
		cache.Config[entities.Project]{
			Singular: "project",
			Plural:   "projects",
			IDOf:     func(p *entities.Project) int64 { return p.ID },
		})

	return accounts, projects, cacheStore
}

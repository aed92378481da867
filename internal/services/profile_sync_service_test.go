package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/providers"
)

func strPtr(s string) *string { return &s }

func profileFixture() *dtos.IntraUser {
	return &dtos.IntraUser{
		ID:            1042,
		Login:         "zx",
		UsualFullName: "Zed Xavier",
		Location:      strPtr("c1r2s3"),
		Campus:        []dtos.Campus{{ID: 7, Name: "Lisboa", City: "Lisboa"}},
		CursusUsers: []dtos.CursusUser{
			{
				Level:  3.14,
				Cursus: dtos.Cursus{Kind: "piscine"},
				Skills: []dtos.CursusSkill{{Name: "Shell", Level: 2}},
			},
			{
				Level:  8.5,
				Cursus: dtos.Cursus{Kind: "main"},
				Skills: []dtos.CursusSkill{
					{Name: "Unix", Level: 5},
					{Name: "Algorithms", Level: 4},
				},
			},
		},
	}
}

func TestFetchProfileCreatesAccount(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return profileFixture(), 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	account, err := svc.FetchProfile(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}

	if account.Login != "zx" {
		t.Errorf("login: got %q", account.Login)
	}
	if account.DisplayName != "Zed Xavier" {
		t.Errorf("display name: got %q", account.DisplayName)
	}
	if account.Level != 8.5 {
		t.Errorf("expected level from the main cursus, got %v", account.Level)
	}
	if account.CampusName != "Lisboa" {
		t.Errorf("campus: got %q", account.CampusName)
	}
	if account.Location != "c1r2s3" {
		t.Errorf("location: got %q", account.Location)
	}
	if len(account.Favorites) != 2 || account.Favorites[0] != "Unix" {
		t.Errorf("favorites must keep upstream order, got %v", account.Favorites)
	}
}

func TestFetchProfileDisplayNameFallback(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	user := profileFixture()
	user.UsualFullName = ""
	user.FirstName = "Zed"
	user.LastName = "Xavier"

	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return user, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	account, err := svc.FetchProfile(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if account.DisplayName != "Zed Xavier" {
		t.Errorf("expected first/last fallback, got %q", account.DisplayName)
	}
}

func TestFetchProfileCapsFavorites(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	user := profileFixture()
	user.CursusUsers = user.CursusUsers[1:]
	user.CursusUsers[0].Skills = nil
	for i := 0; i < 15; i++ {
		user.CursusUsers[0].Skills = append(user.CursusUsers[0].Skills,
			dtos.CursusSkill{Name: fmt.Sprintf("skill-%d", i)})
	}

	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return user, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	account, err := svc.FetchProfile(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if len(account.Favorites) != 10 {
		t.Fatalf("expected 10 favorites, got %d", len(account.Favorites))
	}
	if account.Favorites[0] != "skill-0" || account.Favorites[9] != "skill-9" {
		t.Errorf("favorites must be the first 10 in upstream order, got %v", account.Favorites)
	}
}

func TestFetchProfileUpsertsExisting(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	user := profileFixture()
	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return user, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	first, err := svc.FetchProfile(ctx, "zx")
	if err != nil {
		t.Fatalf("first FetchProfile: %v", err)
	}

	user.CursusUsers[1].Level = 9.0
	second, err := svc.FetchProfile(ctx, "zx")
	if err != nil {
		t.Fatalf("second FetchProfile: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("re-sync must keep the local id: %d vs %d", second.ID, first.ID)
	}
	if second.Level != 9.0 {
		t.Errorf("expected updated level, got %v", second.Level)
	}

	all, err := accounts.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected exactly one account after re-sync, got %d", len(all))
	}
}

func TestFetchProfileNotFoundPropagates(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return nil, 404, &providers.ProviderError{
				Code:    constants.ErrCodeResourceNotFound,
				Message: "Resource not found",
			}
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	_, err := svc.FetchProfile(ctx, "ghost")
	if !providers.IsNotFound(err) {
		t.Errorf("expected not-found to propagate unchanged, got %v", err)
	}
}

func TestFetchProjectsFiltersAndMaps(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	deadline := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	api := &mockIntraAPI{
		getUserProjects: func(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
			return []dtos.ProjectEnrollment{
				{Status: "finished", Project: dtos.IntraProject{Name: "libft"}},
				{Status: "parent", Project: dtos.IntraProject{Name: "cpp-modules"}},
				{
					Status:    "in_progress",
					CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
					Project:   dtos.IntraProject{Name: "minishell"},
					Teams: []dtos.IntraTeam{{
						TerminatingAt: &deadline,
						Users: []dtos.IntraTeamUser{
							{Login: "zx"}, {Login: "ab"},
						},
					}},
				},
			}, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	created, err := svc.FetchProjects(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProjects: %v", err)
	}

	if len(created) != 1 {
		t.Fatalf("finished and parent enrollments must be skipped, got %d projects", len(created))
	}
	p := created[0]
	if p.Name != "minishell" || p.Login != "zx" {
		t.Errorf("unexpected project: %+v", p)
	}
	if !p.Deadline.Equal(deadline) {
		t.Errorf("deadline must come from terminating_at, got %v", p.Deadline)
	}
	if len(p.Teammates) != 2 || p.Teammates[0] != "zx" {
		t.Errorf("teammates must keep the roster order, got %v", p.Teammates)
	}
}

func TestFetchProjectsDeadlineFallback(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	createdAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	api := &mockIntraAPI{
		getUserProjects: func(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
			return []dtos.ProjectEnrollment{
				{
					Status:    "in_progress",
					CreatedAt: createdAt,
					Project:   dtos.IntraProject{Name: "ft_irc"},
				},
			}, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	created, err := svc.FetchProjects(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProjects: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 project, got %d", len(created))
	}
	if !created[0].Deadline.Equal(createdAt.AddDate(0, 0, 30)) {
		t.Errorf("expected 30-day fallback deadline, got %v", created[0].Deadline)
	}
}

func TestFetchProjectsSkipsFailingEnrollment(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	// two active enrollments: the second create trips the one-active rule
	// and must be skipped without failing the batch
	api := &mockIntraAPI{
		getUserProjects: func(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
			return []dtos.ProjectEnrollment{
				{Status: "in_progress", CreatedAt: time.Now(), Project: dtos.IntraProject{Name: "one"}},
				{Status: "in_progress", CreatedAt: time.Now(), Project: dtos.IntraProject{Name: "two"}},
			}, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	created, err := svc.FetchProjects(ctx, "zx")
	if err != nil {
		t.Fatalf("FetchProjects: %v", err)
	}
	if len(created) != 1 || created[0].Name != "one" {
		t.Errorf("expected only the first active enrollment, got %+v", created)
	}
}

func TestSyncProfileFailsWhenEitherSideFails(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	api := &mockIntraAPI{
		getUserByLogin: func(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
			return profileFixture(), 200, nil
		},
		getUserProjects: func(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
			return nil, 500, errors.New("upstream exploded")
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	if _, _, err := svc.SyncProfile(ctx, "zx"); err == nil {
		t.Fatal("expected combined sync to fail")
	}
}

func TestResolveCampusIDNumericPassthrough(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	calls := 0
	api := &mockIntraAPI{
		listCampuses: func(ctx context.Context, page int) ([]dtos.Campus, int, error) {
			calls++
			return nil, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	id, err := svc.ResolveCampusID(ctx, " 42 ")
	if err != nil {
		t.Fatalf("ResolveCampusID: %v", err)
	}
	if id != 42 {
		t.Errorf("expected passthrough id 42, got %d", id)
	}
	if calls != 0 {
		t.Errorf("numeric input must not hit the upstream, got %d calls", calls)
	}
}

func TestResolveCampusIDByNameCachesAnswer(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	calls := 0
	api := &mockIntraAPI{
		listCampuses: func(ctx context.Context, page int) ([]dtos.Campus, int, error) {
			calls++
			return []dtos.Campus{
				{ID: 7, Name: "Lisboa", City: "Lisboa"},
				{ID: 12, Name: "42 Porto", City: "Porto"},
			}, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	id, err := svc.ResolveCampusID(ctx, "Porto")
	if err != nil {
		t.Fatalf("ResolveCampusID: %v", err)
	}
	if id != 12 {
		t.Errorf("expected 12, got %d", id)
	}

	// second lookup is served from the 24h cache
	if _, err := svc.ResolveCampusID(ctx, "porto"); err != nil {
		t.Fatalf("cached ResolveCampusID: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single upstream listing, got %d", calls)
	}
}

func TestResolveCampusIDNotFound(t *testing.T) {
	ctx := context.Background()
	accounts, projects, cacheStore := newTestManagers(t)

	api := &mockIntraAPI{
		listCampuses: func(ctx context.Context, page int) ([]dtos.Campus, int, error) {
			return []dtos.Campus{{ID: 7, Name: "Lisboa", City: "Lisboa"}}, 200, nil
		},
	}
	svc := NewProfileSyncService(api, accounts, projects, cacheStore)

	if _, err := svc.ResolveCampusID(ctx, "atlantis"); !providers.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

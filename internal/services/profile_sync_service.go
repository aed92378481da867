package services

import (
	"context"
	"strconv"
	"strings"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"
	"campus-hub/agora/internal/providers"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfileSyncService keeps local accounts and projects in sync with the
// upstream profile API.
type ProfileSyncService struct {
	api      providers.IntraAPI
	accounts *cache.Manager[entities.Account]
	projects *cache.Manager[entities.Project]
	cache    common.Cache
	log      *zap.SugaredLogger
}

func NewProfileSyncService(
	api providers.IntraAPI,
	accounts *cache.Manager[entities.Account],
	projects *cache.Manager[entities.Project],
	cacheStore common.Cache,
) *ProfileSyncService {
	return &ProfileSyncService{
		api:      api,
		accounts: accounts,
		projects: projects,
		cache:    cacheStore,
		log:      logging.GetLogger().With("service", "profile_sync"),
	}
}

// FetchProfile fetches the upstream profile for login, maps it into an
// Account and upserts it through the cache manager. Upstream errors
// propagate unchanged (404 keeps its not-found code).
func (s *ProfileSyncService) FetchProfile(ctx context.Context, login string) (*entities.Account, error) {
	user, _, err := s.api.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	mapped := mapIntraUser(user)

	existing, err := s.accounts.GetByKey(ctx, mapped.Login)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.accounts.Create(ctx, mapped)
	}

	return s.accounts.Update(ctx, existing.ID, cache.Patch{
		"display_name": mapped.DisplayName,
		"level":        mapped.Level,
		"campus_name":  mapped.CampusName,
		"location":     mapped.Location,
		"favorites":    mapped.Favorites,
	})
}

// FetchProjects fetches the upstream project enrollments for login and
// creates a Project for each one that is neither finished nor a parent
// enrollment. A single enrollment's failure is logged and skipped, never
// aborting the batch.
func (s *ProfileSyncService) FetchProjects(ctx context.Context, login string) ([]entities.Project, error) {
	enrollments, _, err := s.api.GetUserProjects(ctx, login)
	if err != nil {
		return nil, err
	}

	projects := make([]entities.Project, 0, len(enrollments))
	for _, enrollment := range enrollments {
		if enrollment.Status == "finished" || enrollment.Status == "parent" {
			continue
		}

		created, err := s.projects.Create(ctx, mapEnrollment(login, enrollment))
		if err != nil {
			s.log.Warnw("skipping project enrollment",
				"login", login,
				"project", enrollment.Project.Name,
				"error", err.Error(),
			)
			continue
		}
		projects = append(projects, *created)
	}

	return projects, nil
}

// SyncProfile runs FetchProfile and FetchProjects concurrently; if either
// fails, the combined operation fails.
func (s *ProfileSyncService) SyncProfile(ctx context.Context, login string) (*entities.Account, []entities.Project, error) {
	var (
		account  *entities.Account
		projects []entities.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.FetchProfile(gctx, login)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.FetchProjects(gctx, login)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return account, projects, nil
}

// ResolveCampusID turns a campus name (or numeric id) into an upstream
// campus id. Numeric input returns immediately with no I/O; names are
// matched by case-insensitive substring against campus name and city,
// paging the listing until a match is found, and the answer is cached for
// 24 hours.
func (s *ProfileSyncService) ResolveCampusID(ctx context.Context, nameOrID string) (int, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(nameOrID)); err == nil {
		return id, nil
	}

	slug := strings.ToLower(strings.TrimSpace(nameOrID))
	cacheKey := constants.CampusIDKey(slug)

	if cached, ok := common.GetJSON[int](ctx, s.cache, cacheKey); ok {
		return *cached, nil
	}

	for page := 1; ; page++ {
		campuses, _, err := s.api.ListCampuses(ctx, page)
		if err != nil {
			return 0, err
		}

		for _, campus := range campuses {
			if strings.Contains(strings.ToLower(campus.Name), slug) ||
				strings.Contains(strings.ToLower(campus.City), slug) {
				id := int(campus.ID)
				s.cache.Set(ctx, cacheKey, id, constants.CampusIDTTL)
				return id, nil
			}
		}

		if len(campuses) < constants.UpstreamPageSize {
			break
		}
	}

	return 0, &providers.ProviderError{
		Code:    constants.ErrCodeResourceNotFound,
		Message: "no campus matches " + slug,
	}
}

// ============================================================================
// Upstream shape mapping
// ============================================================================

// mapIntraUser converts the upstream profile shape into a local Account.
// The richest cursus entry wins: the main curriculum when present, else the
// first one listed.
func mapIntraUser(user *dtos.IntraUser) *entities.Account {
	account := &entities.Account{
		Login:       user.Login,
		DisplayName: user.UsualFullName,
		CampusName:  "Unknown",
	}

	if account.DisplayName == "" {
		account.DisplayName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if user.Location != nil {
		account.Location = *user.Location
	}
	if len(user.Campus) > 0 {
		account.CampusName = user.Campus[0].Name
	}

	cursus := pickCursus(user.CursusUsers)
	if cursus != nil {
		account.Level = cursus.Level
		// Favorites keep the upstream skill ordering, truncated, never
		// re-sorted.
		for _, skill := range cursus.Skills {
			if len(account.Favorites) == constants.MaxFavoriteSkills {
				break
			}
			account.Favorites = append(account.Favorites, skill.Name)
		}
	}

	return account
}

func pickCursus(cursusUsers []dtos.CursusUser) *dtos.CursusUser {
	for i := range cursusUsers {
		if cursusUsers[i].Cursus.Kind == "main" {
			return &cursusUsers[i]
		}
	}
	if len(cursusUsers) > 0 {
		return &cursusUsers[0]
	}
	return nil
}

// mapEnrollment converts one upstream enrollment into a local Project. The
// deadline comes from the team's terminating_at when present, else the
// enrollment creation time plus 30 days.
func mapEnrollment(login string, enrollment dtos.ProjectEnrollment) *entities.Project {
	project := &entities.Project{
		Login:    login,
		Name:     enrollment.Project.Name,
		Deadline: enrollment.CreatedAt.Add(constants.ProjectDeadlineFallback),
		Status:   entities.ProjectOnHold,
	}
	if enrollment.Status == "in_progress" {
		project.Status = entities.ProjectInProgress
	}

	if len(enrollment.Teams) > 0 {
		team := enrollment.Teams[0]
		if team.TerminatingAt != nil {
			project.Deadline = *team.TerminatingAt
		}
		for _, member := range team.Users {
			project.Teammates = append(project.Teammates, member.Login)
		}
	}

	return project
}

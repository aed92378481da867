package api

import (
	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/db"
	"campus-hub/agora/internal/db/repositories"
	"campus-hub/agora/internal/metrics"
	"campus-hub/agora/internal/models/entities"
	"campus-hub/agora/internal/providers"
	"campus-hub/agora/internal/services"
)

type Repositories struct {
	Accounts        *repositories.AccountRepository
	Projects        *repositories.ProjectRepository
	Events          *repositories.EventRepository
	CommunityEvents *repositories.CommunityEventRepository
	Messages        *repositories.MessageRepository
}

// Managers hold one entity cache manager per entity type. Every read and
// write in the API goes through them, never straight to a repository.
type Managers struct {
	Accounts        *cache.Manager[entities.Account]
	Projects        *cache.Manager[entities.Project]
	Events          *cache.Manager[entities.ScheduledEvent]
	CommunityEvents *cache.Manager[entities.CommunityEvent]
	Messages        *cache.Manager[entities.Message]
}

type Services struct {
	Sync            *services.ProfileSyncService
	Presence        *services.PresenceService
	Messages        *services.MessageService
	CommunityEvents *services.CommunityEventService
}

type Dependencies struct {
	Cache    common.Cache
	Provider *providers.IntraProvider
	Metrics  *metrics.Registry
	Repo     *Repositories
	Managers *Managers
	Services *Services
}

func InitDependencies(cacheStore common.Cache, reg *metrics.Registry) *Dependencies {

	repos := &Repositories{
		Accounts:        repositories.NewAccountRepository(db.PgDB),
		Projects:        repositories.NewProjectRepository(db.PgDB),
		Events:          repositories.NewEventRepository(db.PgDB),
		CommunityEvents: repositories.NewCommunityEventRepository(db.PgDB),
		Messages:        repositories.NewMessageRepository(db.DB),
	}

	managers := &Managers{
		Accounts: cache.New[entities.Account](repos.Accounts, cacheStore, cache.Config[entities.Account]{
			Singular: "user",
			Plural:   "users",
			IDOf:     func(a *entities.Account) int64 { return a.ID },
			KeyName:  "login",
			KeyOf:    func(a *entities.Account) string { return a.Login },
		}).WithMetrics(reg),
		Projects: cache.New[entities.Project](repos.Projects, cacheStore, cache.Config[entities.Project]{
			Singular: "project",
			Plural:   "projects",
			IDOf:     func(p *entities.Project) int64 { return p.ID },
		}).WithMetrics(reg),
		Events: cache.New[entities.ScheduledEvent](repos.Events, cacheStore, cache.Config[entities.ScheduledEvent]{
			Singular: "event",
			Plural:   "events",
			IDOf:     func(e *entities.ScheduledEvent) int64 { return e.ID },
		}).WithMetrics(reg),
		CommunityEvents: cache.New[entities.CommunityEvent](repos.CommunityEvents, cacheStore, cache.Config[entities.CommunityEvent]{
			Singular: "community_event",
			Plural:   "community_events",
			IDOf:     func(e *entities.CommunityEvent) int64 { return e.ID },
		}).WithMetrics(reg),
		Messages: cache.New[entities.Message](repos.Messages, cacheStore, cache.Config[entities.Message]{
			Singular:    "message",
			Plural:      "messages",
			IDOf:        func(m *entities.Message) int64 { return m.ID },
			IndexKeysOf: services.MessageIndexKeys,
		}).WithMetrics(reg),
	}

	provider := providers.NewIntraProvider(cacheStore).WithMetrics(reg)

	syncSvc := services.NewProfileSyncService(provider, managers.Accounts, managers.Projects, cacheStore)
	presenceSvc := services.NewPresenceService(provider, managers.Accounts, syncSvc, cacheStore).WithMetrics(reg)

	return &Dependencies{
		Cache:    cacheStore,
		Provider: provider,
		Metrics:  reg,
		Repo:     repos,
		Managers: managers,
		Services: &Services{
			Sync:            syncSvc,
			Presence:        presenceSvc,
			Messages:        services.NewMessageService(managers.Messages, repos.Messages, cacheStore),
			CommunityEvents: services.NewCommunityEventService(managers.CommunityEvents),
		},
	}
}

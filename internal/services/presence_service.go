package services

import (
	"context"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/metrics"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"
	"campus-hub/agora/internal/providers"

	"go.uber.org/zap"
)

// PresenceService answers "who is active at this campus", accepting brief
// staleness under upstream failure but never unbounded staleness silently.
type PresenceService struct {
	api      providers.IntraAPI
	accounts *cache.Manager[entities.Account]
	sync     *ProfileSyncService
	cache    common.Cache
	reg      *metrics.Registry
	log      *zap.SugaredLogger
}

func NewPresenceService(
	api providers.IntraAPI,
	accounts *cache.Manager[entities.Account],
	syncSvc *ProfileSyncService,
	cacheStore common.Cache,
) *PresenceService {
	return &PresenceService{
		api:      api,
		accounts: accounts,
		sync:     syncSvc,
		cache:    cacheStore,
		log:      logging.GetLogger().With("service", "presence"),
	}
}

// WithMetrics attaches a metrics registry to the service
func (s *PresenceService) WithMetrics(reg *metrics.Registry) *PresenceService {
	s.reg = reg
	return s
}

// GetActivePeers returns the accounts currently active at a campus. A fresh
// upstream fetch refreshes the 60s snapshot cache; when the fetch fails, the
// last good snapshot is returned with Stale set. With no snapshot to fall
// back on, the upstream failure propagates.
func (s *PresenceService) GetActivePeers(ctx context.Context, campusID int) (*entities.PresenceSnapshot, error) {
	snapshotKey := constants.ActivePeersKey(campusID)
	fallback, _ := common.GetJSON[entities.PresenceSnapshot](ctx, s.cache, snapshotKey)

	snapshot, err := s.fetchFresh(ctx, campusID)
	if err != nil {
		if fallback != nil {
			s.log.Warnw("serving stale presence snapshot",
				"campus_id", campusID,
				"error", err.Error(),
			)
			if s.reg != nil {
				s.reg.StaleSnapshotsTotal.Inc()
			}
			fallback.Stale = true
			return fallback, nil
		}
		return nil, err
	}

	s.cache.Set(ctx, snapshotKey, snapshot, constants.PeersTTL)
	return snapshot, nil
}

// fetchFresh pages the upstream active-locations listing and enriches each
// entry with a local account id and a cached avatar.
func (s *PresenceService) fetchFresh(ctx context.Context, campusID int) (*entities.PresenceSnapshot, error) {
	var locations []dtos.CampusLocation
	for page := 1; ; page++ {
		batch, _, err := s.api.GetCampusLocations(ctx, campusID, page)
		if err != nil {
			return nil, err
		}
		locations = append(locations, batch...)
		if len(batch) < constants.UpstreamPageSize {
			break
		}
	}

	peers := make([]entities.PresencePeer, 0, len(locations))
	for _, location := range locations {
		if location.User.Login == "" || location.Host == "" || location.BeginAt == nil {
			continue
		}

		peers = append(peers, entities.PresencePeer{
			Login:     location.User.Login,
			AccountID: s.resolveAccountID(ctx, location.User.Login),
			Host:      location.Host,
			BeginAt:   *location.BeginAt,
			AvatarURL: s.avatarURL(ctx, location.User.Login),
		})
	}

	return &entities.PresenceSnapshot{
		CampusID: campusID,
		Count:    len(peers),
		Peers:    peers,
	}, nil
}

// resolveAccountID maps a login to a local account id, syncing the profile
// on a local miss. Failures degrade to id 0 so one bad profile never blocks
// the whole list.
func (s *PresenceService) resolveAccountID(ctx context.Context, login string) int64 {
	account, err := s.accounts.GetByKey(ctx, login)
	if err == nil && account != nil {
		return account.ID
	}

	account, err = s.sync.FetchProfile(ctx, login)
	if err != nil || account == nil {
		if err != nil {
			s.log.Debugw("could not resolve account id", "login", login, "error", err.Error())
		}
		return 0
	}
	return account.ID
}

// avatarURL returns the 6h-cached avatar for a login, or "" when the
// upstream lookup fails.
func (s *PresenceService) avatarURL(ctx context.Context, login string) string {
	avatarKey := constants.AvatarKey(login)
	if cached, ok := common.GetJSON[string](ctx, s.cache, avatarKey); ok {
		return *cached
	}

	user, _, err := s.api.GetUserByLogin(ctx, login)
	if err != nil {
		return ""
	}

	s.cache.Set(ctx, avatarKey, user.Image.Link, constants.AvatarTTL)
	return user.Image.Link
}

// RefreshOnlineRoster rebuilds the users:online roster from the cached
// presence snapshots of the tracked campuses.
func (s *PresenceService) RefreshOnlineRoster(ctx context.Context, campusIDs []int) {
	seen := make(map[string]bool)
	var logins []string

	for _, campusID := range campusIDs {
		snapshot, ok := common.GetJSON[entities.PresenceSnapshot](ctx, s.cache, constants.ActivePeersKey(campusID))
		if !ok {
			continue
		}
		for _, peer := range snapshot.Peers {
			if !seen[peer.Login] {
				seen[peer.Login] = true
				logins = append(logins, peer.Login)
			}
		}
	}

	s.cache.Set(ctx, constants.KeyOnlineUsers, logins, constants.OnlineTTL)
}

// OnlineUsers returns the cached roster of online logins; empty when the
// roster has expired or was never built.
func (s *PresenceService) OnlineUsers(ctx context.Context) []string {
	logins, ok := common.GetJSON[[]string](ctx, s.cache, constants.KeyOnlineUsers)
	if !ok || logins == nil {
		return nil
	}
	return *logins
}

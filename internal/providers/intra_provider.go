package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/metrics"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"
)

// IntraAPI is the surface of the upstream profile API the services consume
type IntraAPI interface {
	// GetUserByLogin fetches one profile by login
	GetUserByLogin(ctx context.Context, login string) (*dtos.IntraUser, int, error)

	// GetUserProjects fetches a user's project enrollments
	GetUserProjects(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error)

	// GetCampusLocations fetches one page of active locations for a campus
	GetCampusLocations(ctx context.Context, campusID, page int) ([]dtos.CampusLocation, int, error)

	// ListCampuses fetches one page of the active campus listing
	ListCampuses(ctx context.Context, page int) ([]dtos.Campus, int, error)
}

// IntraProvider implements IntraAPI against the 42 Intra API using the
// OAuth2 client-credentials grant.
//
// The bearer token is held in process memory and mirrored into the shared
// cache store under constants.KeyOAuthToken, so one instance's refresh
// benefits every instance sharing the store.
type IntraProvider struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Client       *http.Client

	cache common.Cache
	reg   *metrics.Registry

	mu    sync.Mutex
	token entities.CachedToken

	// injectable clock for expiry tests
	now func() time.Time
}

var _ IntraAPI = (*IntraProvider)(nil)

// NewIntraProvider creates a provider, reading config from environment variables
func NewIntraProvider(cacheStore common.Cache) *IntraProvider {
	baseURL := os.Getenv("INTRA_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.intra.42.fr/v2" // Default
	}
	tokenURL := os.Getenv("INTRA_TOKEN_URL")
	if tokenURL == "" {
		tokenURL = strings.TrimSuffix(baseURL, "/v2") + "/oauth/token"
	}

	return &IntraProvider{
		BaseURL:      baseURL,
		TokenURL:     tokenURL,
		ClientID:     os.Getenv("INTRA_CLIENT_ID"),
		ClientSecret: os.Getenv("INTRA_CLIENT_SECRET"),
		Client: &http.Client{
			Timeout: constants.UpstreamTimeout,
		},
		cache: cacheStore,
		now:   time.Now,
	}
}

// WithMetrics attaches a metrics registry to the provider
func (p *IntraProvider) WithMetrics(reg *metrics.Registry) *IntraProvider {
	p.reg = reg
	return p
}

// ============================================================================
// Token lifecycle
// ============================================================================

// ensureToken returns a bearer token that is valid for at least the safety
// margin. Order of preference: the in-memory token, a token another
// instance left in the shared cache, a fresh client-credentials exchange.
func (p *IntraProvider) ensureToken(ctx context.Context) (string, error) {
	now := p.now()

	p.mu.Lock()
	token := p.token
	p.mu.Unlock()

	if token.Valid(now) {
		return token.AccessToken, nil
	}

	if cached, ok := common.GetJSON[entities.CachedToken](ctx, p.cache, constants.KeyOAuthToken); ok && cached.Valid(now) {
		p.adoptToken(*cached)
		return cached.AccessToken, nil
	}

	return p.authenticate(ctx)
}

// authenticate exchanges the configured client credentials for a fresh
// bearer token and caches it in memory and in the shared store.
func (p *IntraProvider) authenticate(ctx context.Context) (string, error) {
	if p.ClientID == "" || p.ClientSecret == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthConfig,
			Message: constants.GetErrorMessage(constants.ErrCodeAuthConfig),
		}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create token request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthenticationFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeAuthenticationFailed),
			Details: string(bodyBytes),
		}
	}

	var tokenResp dtos.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeInvalidPayload,
			Message: "Failed to decode token response",
			Err:     err,
		}
	}

	now := p.now()
	token := entities.CachedToken{
		AccessToken: tokenResp.AccessToken,
		ExpiresAt:   now.Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}

	// Shared-cache TTL is the declared lifetime minus the safety margin,
	// floored so a short-lived token is still shared briefly.
	ttl := time.Duration(tokenResp.ExpiresIn)*time.Second - constants.TokenSafetyMargin
	if ttl < constants.TokenMinTTL {
		ttl = constants.TokenMinTTL
	}
	p.cache.Set(ctx, constants.KeyOAuthToken, token, ttl)
	p.adoptToken(token)

	if p.reg != nil {
		p.reg.TokenRefreshesTotal.Inc()
	}
	logging.Debug("intra: token refreshed", "expires_at", token.ExpiresAt)

	return token.AccessToken, nil
}

func (p *IntraProvider) adoptToken(token entities.CachedToken) {
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
}

// ============================================================================
// API surface
// ============================================================================

// GetUserByLogin fetches a profile by login
func (p *IntraProvider) GetUserByLogin(ctx context.Context, login string) (*dtos.IntraUser, int, error) {
	if login == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidPayload,
			Message: "login cannot be empty",
		}
	}

	var user dtos.IntraUser
	status, err := p.doGET(ctx, "/users/"+url.PathEscape(login), &user)
	if err != nil {
		return nil, status, err
	}
	return &user, status, nil
}

// GetUserProjects fetches a user's project enrollments
func (p *IntraProvider) GetUserProjects(ctx context.Context, login string) ([]dtos.ProjectEnrollment, int, error) {
	if login == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidPayload,
			Message: "login cannot be empty",
		}
	}

	var enrollments []dtos.ProjectEnrollment
	status, err := p.doGET(ctx, "/users/"+url.PathEscape(login)+"/projects_users", &enrollments)
	if err != nil {
		return nil, status, err
	}
	return enrollments, status, nil
}

// GetCampusLocations fetches one page of active locations for a campus
func (p *IntraProvider) GetCampusLocations(ctx context.Context, campusID, page int) ([]dtos.CampusLocation, int, error) {
	endpoint := fmt.Sprintf("/campus/%d/locations?filter[active]=true&per_page=%d&page=%d",
		campusID, constants.UpstreamPageSize, page)

	var locations []dtos.CampusLocation
	status, err := p.doGET(ctx, endpoint, &locations)
	if err != nil {
		return nil, status, err
	}
	return locations, status, nil
}

// ListCampuses fetches one page of the active campus listing
func (p *IntraProvider) ListCampuses(ctx context.Context, page int) ([]dtos.Campus, int, error) {
	endpoint := fmt.Sprintf("/campus?filter[active]=true&per_page=%d&page=%d",
		constants.UpstreamPageSize, page)

	var campuses []dtos.Campus
	status, err := p.doGET(ctx, endpoint, &campuses)
	if err != nil {
		return nil, status, err
	}
	return campuses, status, nil
}

// ============================================================================
// HTTP helpers
// ============================================================================

// doGET performs an authenticated GET and decodes the JSON response
func (p *IntraProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	token, err := p.ensureToken(ctx)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		p.recordUpstream(endpoint, 0)
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	p.recordUpstream(endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidPayload,
			Message: "Failed to decode response",
			Err:     err,
		}
	}

	return resp.StatusCode, nil
}

func (p *IntraProvider) recordUpstream(endpoint string, status int) {
	if p.reg == nil {
		return
	}
	// Strip the query string so label cardinality stays bounded.
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	p.reg.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// buildHTTPError creates the appropriate error for a non-2xx status
func (p *IntraProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return &ProviderError{
			Code:    constants.ErrCodeAuthenticationFailed,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeUpstreamError,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details: body,
		}
	}
}

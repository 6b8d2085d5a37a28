// Package api implements the Request Coordinator: the single chokepoint for
// all outbound calls to the PrimeForm backend. It attaches authentication
// uniformly, bounds every call with a timeout, collapses redundant concurrent
// reads into one network round-trip, and maps server responses into the
// domain error taxonomy.
package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"primeform/config"
	"primeform/internal/appcontext"
	domainerrors "primeform/internal/domain/errors"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
)

// Soft-failure shapes the backend returns for "plan absent" states. These
// exact message strings resolve as ordinary payloads instead of errors.
var softAbsenceMessages = map[string]struct{}{
	"No active workout plan found":        {},
	"No active diet plan found":           {},
	"Not authorized to access this route": {},
}

// envelope mirrors the backend's unified response structure.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// Params defines the dependencies required by the client.
type Params struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	Credentials service.CredentialStore
	Invalidator service.AuthInvalidator `optional:"true"`
}

type client struct {
	baseURL        string
	httpClient     *http.Client
	credentials    service.CredentialStore
	invalidator    service.AuthInvalidator
	logger         *slog.Logger
	defaultTimeout time.Duration
	limiter        *rate.Limiter

	// flight is the in-flight request registry. Only GETs enter it; an
	// entry lives exactly as long as its underlying call.
	flight singleflight.Group
}

// NewClient is the constructor for the Request Coordinator.
func NewClient(params Params) (service.APIClient, error) {
	base := strings.TrimSuffix(params.Config.API.BaseURL, "/")
	if base == "" {
		return nil, errors.New("api base url must be provided")
	}

	var limiter *rate.Limiter
	if params.Config.API.RatePerSecond > 0 {
		burst := params.Config.API.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(params.Config.API.RatePerSecond), burst)
	}

	return &client{
		baseURL:        base,
		httpClient:     &http.Client{},
		credentials:    params.Credentials,
		invalidator:    params.Invalidator,
		logger:         params.Logger,
		defaultTimeout: params.Config.API.Timeout,
		limiter:        limiter,
	}, nil
}

func (c *client) log(ctx context.Context) *slog.Logger {
	return appcontext.GetLoggerOrDefault(ctx, c.logger)
}

func (c *client) Get(ctx context.Context, endpoint string, opts ...service.CallOption) (*service.APIResult, error) {
	return c.call(ctx, http.MethodGet, endpoint, nil, opts)
}

func (c *client) Post(ctx context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return c.call(ctx, http.MethodPost, endpoint, body, opts)
}

func (c *client) Put(ctx context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return c.call(ctx, http.MethodPut, endpoint, body, opts)
}

func (c *client) Patch(ctx context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return c.call(ctx, http.MethodPatch, endpoint, body, opts)
}

func (c *client) Delete(ctx context.Context, endpoint string, opts ...service.CallOption) (*service.APIResult, error) {
	return c.call(ctx, http.MethodDelete, endpoint, nil, opts)
}

func (c *client) call(ctx context.Context, method, endpoint string, body any, opts []service.CallOption) (*service.APIResult, error) {
	options := service.CallOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = c.defaultTimeout
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "serialize request body")
		}
	}

	// Mutations are not safely collapsible; only reads deduplicate.
	if method != http.MethodGet {
		return c.execute(ctx, method, endpoint, payload, timeout)
	}

	key := fingerprint(method, endpoint, payload)
	shared, err, _ := c.flight.Do(key, func() (any, error) {
		return c.execute(ctx, method, endpoint, payload, timeout)
	})
	if err != nil {
		return nil, err
	}

	// Hand every caller its own copy so nobody mutates a shared result.
	result := *shared.(*service.APIResult)

	return &result, nil
}

// fingerprint identifies a request by method, endpoint and body.
func fingerprint(method, endpoint string, payload []byte) string {
	sum := sha256.Sum256(payload)

	return method + " " + endpoint + " " + hex.EncodeToString(sum[:])
}

func (c *client) execute(ctx context.Context, method, endpoint string, payload []byte, timeout time.Duration) (*service.APIResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.mapTransportError(err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimPrefix(endpoint, "/"), reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := appcontext.GetRequestID(ctx)
	if requestID == "" {
		requestID = appcontext.NewRequestID()
	}
	req.Header.Set(appcontext.HeaderXRequestID, requestID)

	token, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load credential")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx).Warn("Request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Any("error", err))

		return nil, c.mapTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.mapTransportError(err)
	}

	c.log(ctx).Debug("Request completed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	return c.decodeResponse(ctx, resp.StatusCode, raw)
}

// mapTransportError folds network-level failures into the taxonomy. Deadline
// overruns become the timeout sentinel; everything else passes through.
func (c *client) mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrTimeout.WrapMessage("request deadline exceeded")
	}

	return errors.Wrap(err, "network failure")
}

func (c *client) decodeResponse(ctx context.Context, status int, raw []byte) (*service.APIResult, error) {
	env := envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, errors.Wrapf(err, "unexpected response shape (status %d)", status)
		}
	}

	if status >= 200 && status < 300 {
		return &service.APIResult{
			StatusCode: status,
			Message:    env.Message,
			Data:       env.Data,
		}, nil
	}

	// The two tolerated soft-failure shapes resolve as ordinary payloads so
	// UI code can treat "plan absent" as a normal state.
	if _, ok := softAbsenceMessages[env.Message]; ok && (status == http.StatusNotFound || status == http.StatusUnauthorized) {
		return &service.APIResult{
			StatusCode: status,
			Message:    env.Message,
			Data:       env.Data,
			Absent:     true,
		}, nil
	}

	// Any other 401 means the credential is no longer trusted: purge it
	// before the error propagates.
	if status == http.StatusUnauthorized {
		c.invalidateAuth(ctx)

		return nil, domainerrors.ErrAuthInvalidated.WrapMessage(env.Message)
	}

	details := ""
	if env.Error != nil {
		details = env.Error.Details
	}

	return nil, errors.WithStack(domainerrors.NewHTTPError(status, env.Message, details))
}

func (c *client) invalidateAuth(ctx context.Context) {
	if err := c.credentials.ClearToken(ctx); err != nil {
		c.log(ctx).Error("Failed to clear rejected credential", slog.Any("error", err))
	}
	if c.invalidator != nil {
		c.invalidator.InvalidateAuth(ctx)
	}
}

package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/infra/cache"
	"primeform/internal/infra/persistence/memory"
)

// recordedCall captures one request that reached the fake API client.
type recordedCall struct {
	Method   string
	Endpoint string
	Body     any
	Options  service.CallOptions
}

// fakeAPI is a scriptable service.APIClient. Routes are keyed by
// "METHOD endpoint"; unrouted calls succeed with an empty object payload.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	routes map[string]func() (*service.APIResult, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: make(map[string]func() (*service.APIResult, error))}
}

func (f *fakeAPI) route(method, endpoint string, result *service.APIResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes[method+" "+endpoint] = func() (*service.APIResult, error) {
		return result, err
	}
}

func (f *fakeAPI) callCount(method, endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, call := range f.calls {
		if call.Method == method && call.Endpoint == endpoint {
			count++
		}
	}

	return count
}

func (f *fakeAPI) lastCall(t *testing.T) recordedCall {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.calls, "expected at least one API call")

	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) do(method, endpoint string, body any, opts []service.CallOption) (*service.APIResult, error) {
	options := service.CallOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: method, Endpoint: endpoint, Body: body, Options: options})
	handler := f.routes[method+" "+endpoint]
	f.mu.Unlock()

	if handler != nil {
		return handler()
	}

	return &service.APIResult{StatusCode: 200, Data: json.RawMessage(`{}`)}, nil
}

func (f *fakeAPI) Get(_ context.Context, endpoint string, opts ...service.CallOption) (*service.APIResult, error) {
	return f.do("GET", endpoint, nil, opts)
}

func (f *fakeAPI) Post(_ context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return f.do("POST", endpoint, body, opts)
}

func (f *fakeAPI) Put(_ context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return f.do("PUT", endpoint, body, opts)
}

func (f *fakeAPI) Patch(_ context.Context, endpoint string, body any, opts ...service.CallOption) (*service.APIResult, error) {
	return f.do("PATCH", endpoint, body, opts)
}

func (f *fakeAPI) Delete(_ context.Context, endpoint string, opts ...service.CallOption) (*service.APIResult, error) {
	return f.do("DELETE", endpoint, nil, opts)
}

// okResult wraps v as a successful API payload.
func okResult(t *testing.T, v any) *service.APIResult {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return &service.APIResult{StatusCode: 200, Data: data}
}

// absentResult mimics a tolerated soft absence.
func absentResult(message string) *service.APIResult {
	return &service.APIResult{StatusCode: 404, Message: message, Absent: true}
}

// serviceFixtures wires a fake API against a real cache manager backed by an
// in-memory store, so ownership and purge behavior run for real.
type serviceFixtures struct {
	api       *fakeAPI
	store     repository.KeyValueStore
	userCache repository.UserCacheRepository
	logger    *slog.Logger
}

func createServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	return &serviceFixtures{
		api:       newFakeAPI(),
		store:     store,
		userCache: cache.NewManager(store, logger),
		logger:    logger,
	}
}

// signIn seeds the identity slot directly, bypassing the auth flow.
func (f *serviceFixtures) signIn(t *testing.T, userID string) {
	t.Helper()

	require.NoError(t, f.userCache.SetCurrentUserID(context.Background(), userID))
}

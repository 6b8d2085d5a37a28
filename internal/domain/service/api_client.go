// Package service defines the contracts for domain services whose concrete
// implementations live in the infra layer.
package service

import (
	"context"
	"encoding/json"
	"time"

	"primeform/internal/errors"
)

// APIResult is the decoded outcome of a coordinated request. Soft absences
// (the tolerated "no active plan" / "not authorized" shapes) come back as an
// ordinary result with Absent set, so callers can treat "plan absent" as a
// normal state rather than an exceptional one.
type APIResult struct {
	StatusCode int             // HTTP status the server responded with.
	Message    string          // Server-provided message from the envelope.
	Data       json.RawMessage // Raw payload; decode with Decode.
	Absent     bool            // True for tolerated soft-absence shapes.
}

// Decode unmarshals the result payload into out.
func (r *APIResult) Decode(out any) error {
	if len(r.Data) == 0 {
		return errors.New("result carries no data")
	}

	return errors.Wrap(json.Unmarshal(r.Data, out), "decode result data")
}

// CallOptions carries per-call overrides for the Request Coordinator.
type CallOptions struct {
	Timeout time.Duration // Zero means the client's default for the method class.
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithTimeout overrides the timeout for a single call. Used for known
// long-running operations such as plan generation.
func WithTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) {
		o.Timeout = d
	}
}

// APIClient is the single chokepoint for all outbound calls: it attaches
// authentication uniformly, bounds every call with a timeout, and collapses
// redundant concurrent reads into one network round-trip.
type APIClient interface {
	Get(ctx context.Context, endpoint string, opts ...CallOption) (*APIResult, error)
	Post(ctx context.Context, endpoint string, body any, opts ...CallOption) (*APIResult, error)
	Put(ctx context.Context, endpoint string, body any, opts ...CallOption) (*APIResult, error)
	Patch(ctx context.Context, endpoint string, body any, opts ...CallOption) (*APIResult, error)
	Delete(ctx context.Context, endpoint string, opts ...CallOption) (*APIResult, error)
}

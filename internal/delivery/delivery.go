// Package delivery defines the contract every transport front end satisfies.
package delivery

import (
	"context"
)

// Delivery is a long-running transport front end, started by the composition
// root and stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}

package delivery

import "context"

// Delivery is a long-running inbound transport started by the application runner
type Delivery interface {
	Serve(ctx context.Context) error
}

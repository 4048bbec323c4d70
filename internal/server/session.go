package server

import "context"

// Session is the background component started and stopped with the server.
// *dashboard.Session satisfies it.
type Session interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

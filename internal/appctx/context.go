// Package appctx provides the shared application context commands pull out
// of their cobra context.
package appctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/adminlayers/gcadm/internal/auth"
	"github.com/adminlayers/gcadm/internal/backend"
	"github.com/adminlayers/gcadm/internal/config"
	"github.com/adminlayers/gcadm/internal/secretstore"
)

// contextKey is a private type for context keys.
type contextKey string

const appKey contextKey = "app"

// App holds the shared application context for all commands. Backend is
// always set; Auth is nil in demo mode.
type App struct {
	Config  *config.Config
	Secrets *secretstore.Store
	Auth    *auth.Manager
	Backend backend.Service
	Log     *zap.Logger

	// Flags holds the global flag values.
	Flags GlobalFlags
}

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	Demo       bool
	Region     string
	ConfigPath string
	Verbose    bool
	PageSize   int
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}

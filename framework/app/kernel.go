package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/definitions"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/providers"
)

// Version is reported by the CLI and the admin server log.
const Version = "0.1.0"

const shutdownTimeout = 5 * time.Second

// Application ties configuration, logging, type registration and the bean
// context together.
//
//	application := app.New(config.Load(), logger)
//	application.Register(&services.AppServiceProvider{})
//	if err := application.Boot(); err != nil { ... }
type Application struct {
	Config    *config.Config
	Log       *zap.Logger
	Types     *container.TypeRegistry
	Providers *container.ProviderRegistry
	Context   *container.Context

	source beans.Source
}

// New creates the application and registers the framework provider. A nil
// logger is replaced by a no-op.
func New(cfg *config.Config, log *zap.Logger) *Application {
	if log == nil {
		log = zap.NewNop()
	}
	types := container.NewTypeRegistry()
	registry := container.NewProviderRegistry(types)

	a := &Application{
		Config:    cfg,
		Log:       log,
		Types:     types,
		Providers: registry,
		Context:   container.NewContext(types, container.WithLogger(log)),
	}
	registry.Register(&providers.FrameworkServiceProvider{Log: log})
	return a
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// SetSource overrides the definition file named by the config.
func (a *Application) SetSource(src beans.Source) { a.source = src }

// Source returns the definition source Boot will use.
func (a *Application) Source() (beans.Source, error) {
	if a.source != nil {
		return a.source, nil
	}
	format, err := definitions.ParseFormat(a.Config.Beans.Format)
	if err != nil {
		return nil, err
	}
	return definitions.Open(a.Config.Beans.Definitions, format)
}

// Boot validates the config, starts the context and then boots every
// provider.
func (a *Application) Boot() error {
	if a.Providers.Booted() {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	src, err := a.Source()
	if err != nil {
		return err
	}
	if err := a.Context.SetDefinitionSource(src); err != nil {
		return err
	}
	if err := a.Context.Start(); err != nil {
		return err
	}
	return a.Providers.Boot(a.Context)
}

// Serve boots the application (if needed) and serves the admin API on the
// configured address until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Admin.Addr)
	if err != nil {
		return fmt.Errorf("admin listen: %w", err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. The listener is closed on
// return.
func (a *Application) ServeListener(ctx context.Context, ln net.Listener) error {
	if err := a.Boot(); err != nil {
		ln.Close()
		return err
	}
	admin, err := gohttp.NewAdmin(a.Context, a.Log)
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           admin.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	a.Log.Info("admin server listening",
		zap.String("app", a.Config.App.Name),
		zap.String("version", Version),
		zap.String("env", a.Config.App.Env),
		zap.String("addr", ln.Addr().String()),
	)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Log.Info("admin server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

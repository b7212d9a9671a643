package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/cache"
	"ig-dashboard/infrastructure/clients/graph"
	"ig-dashboard/infrastructure/configuration"
	"ig-dashboard/infrastructure/logger"
	"ig-dashboard/infrastructure/persistence"
	httpHandler "ig-dashboard/interfaces/http"
	"ig-dashboard/interfaces/middleware"
	"ig-dashboard/server"
	"ig-dashboard/usecase"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var httpServer *http.Server

// stores groups the repositories of the selected database vendor.
type stores struct {
	db       *sql.DB
	accounts repository.IAccount
	profiles repository.IProfile
	media    repository.IMediaCache
}

type sessionBackend interface {
	repository.ISessionStore
	repository.IStateStore
}

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	verify := flag.Bool("verify-credentials", false, "check the Facebook app id and secret against the Graph API and exit")
	flag.Parse()

	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	C := configuration.C
	graphClient := graph.NewClient(graph.Config{
		AppID:       C.OAuth.Facebook.ClientID,
		AppSecret:   C.OAuth.Facebook.ClientSecret,
		RedirectURI: C.OAuth.Facebook.RedirectURI,
		BaseURL:     C.Graph.BaseURL,
		DialogURL:   C.Graph.DialogURL,
		Version:     C.Graph.Version,
	}, &http.Client{Timeout: C.Graph.Timeout})

	if *verify {
		os.Exit(verifyCredentials(ctx, graphClient))
	}

	st, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Database initialization failed")
	}
	defer st.db.Close()

	g, ctx := errgroup.WithContext(ctx)

	backend := InitiateSessionStore(ctx, g)

	sessionUC := usecase.NewSessionUseCase(backend, C.Session.TTL)
	linkUC := usecase.NewLinkUseCase(graphClient, backend, st.accounts, st.profiles, sessionUC)
	mediaUC := usecase.NewMediaUseCase(graphClient, st.accounts, st.media)
	accountUC := usecase.NewAccountUseCase(st.accounts, st.profiles, st.media)

	codec := middleware.NewCookieCodec(C.Session.CookieName, C.Session.Secret, C.App.TLSEnabled)
	authLimiter, err := middleware.NewAuthLimiter(C.App.AuthRateLimit)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"error": err, "rate": C.App.AuthRateLimit}).Warn("Invalid auth rate limit; auth routes are not throttled")
	}

	router := server.InitiateRouter(
		httpHandler.NewAuthHandler(linkUC, sessionUC, codec),
		httpHandler.NewInstagramHandler(mediaUC, accountUC),
		httpHandler.NewHealthHandler(st.db),
		sessionUC,
		codec,
		server.Options{AllowedOrigins: C.App.AllowedOrigins, AuthLimiter: authLimiter},
	)

	app := C.App
	logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled}).Info("Starting application")
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if app.TLSEnabled {
			if app.TLSCertFile == "" || app.TLSKeyFile == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": app.TLSCertFile, "key": app.TLSKeyFile}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Graceful shutdown failed")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
	logger.GetLogger().Info("Application stopped")
}

// InitiateDatabase connects to the configured vendor and makes sure the
// schema exists. Connectivity failure is fatal to the caller.
func InitiateDatabase() (*stores, error) {
	if configuration.C.Database.Vendor == "mssql" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureSchemaMSSQL(db); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			db:       db,
			accounts: persistence.NewAccountRepositoryMSSQL(db),
			profiles: persistence.NewProfileRepositoryMSSQL(db),
			media:    persistence.NewMediaCacheRepositoryMSSQL(db),
		}, nil
	}

	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		return nil, err
	}
	if err := persistence.EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &stores{
		db:       db,
		accounts: persistence.NewAccountRepository(db),
		profiles: persistence.NewProfileRepository(db),
		media:    persistence.NewMediaCacheRepository(db),
	}, nil
}

// InitiateSessionStore prefers Redis and falls back to the in-process store,
// whose expiry cleanup runs in g until ctx is cancelled.
func InitiateSessionStore(ctx context.Context, g *errgroup.Group) sessionBackend {
	rc := configuration.C.RedisClient
	if configuration.C.Session.Store == "redis" {
		client, err := cache.NewCache(ctx, rc.Addr(), rc.Username, rc.Password, rc.DB)
		if err == nil {
			logger.GetLogger().WithField("addr", rc.Addr()).Info("Using Redis session store")
			g.Go(func() error {
				<-ctx.Done()
				return client.Close()
			})
			return cache.NewRedisSessionStore(client)
		}
		logger.GetLogger().WithField("error", err).Warn("Redis not available - falling back to in-memory sessions")
	}

	store := cache.NewMemorySessionStore()
	g.Go(func() error {
		store.Run(ctx)
		return nil
	})
	logger.GetLogger().Info("Using in-memory session store")
	return store
}

func verifyCredentials(ctx context.Context, client *graph.Client) int {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	app, err := client.VerifyCredentials(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Facebook app credentials are not valid")
		return 1
	}
	logger.GetLogger().WithFields(map[string]interface{}{"id": app["id"], "name": app["name"]}).Info("Facebook app credentials verified")
	return 0
}

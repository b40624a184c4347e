package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lostfound/internal/handlers"
	"lostfound/internal/logger"
	"lostfound/internal/repository"
	"lostfound/internal/repository/db"
	"lostfound/internal/server"
	"lostfound/internal/service"
	"lostfound/internal/storage"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// object store for report images
	store, err := openObjectStore(context.Background())
	if err != nil {
		log.Fatalw("failed to init object store", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, store, authConfig(), log)
	apiHandler := handlers.NewHandler(services, log, handlerConfig())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvPrefix("lostfound")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // LOSTFOUND_JWT_ACCESS_SECRET etc. override the file
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

func openObjectStore(ctx context.Context) (*storage.S3Store, error) {
	return storage.NewS3Store(ctx,
		viper.GetString("aws.region"),
		viper.GetString("aws.bucket"),
		viper.GetString("aws.endpoint"),
	)
}

func authConfig() service.AuthConfig {
	return service.AuthConfig{
		AccessSecret:  viper.GetString("jwt.access_secret"),
		RefreshSecret: viper.GetString("jwt.refresh_secret"),
		AccessTTL:     viper.GetDuration("jwt.access_ttl"),
		RefreshTTL:    viper.GetDuration("jwt.refresh_ttl"),
	}
}

func handlerConfig() handlers.Config {
	return handlers.Config{
		AccessCookieTTL:  viper.GetDuration("jwt.access_ttl"),
		RefreshCookieTTL: viper.GetDuration("jwt.refresh_ttl"),
		SecureCookies:    viper.GetBool("http.secure_cookies"),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

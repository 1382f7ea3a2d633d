package receiptwire

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/receiptwirehq/core/cache"
	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/database/memory"
	"github.com/receiptwirehq/core/database/sqlite"
	"github.com/receiptwirehq/core/logger"
	"github.com/receiptwirehq/core/middleware"
	"github.com/receiptwirehq/core/storage"
	"golang.org/x/sync/errgroup"
)

var (
	applog    *logger.Logger
	volatile  cache.Volatilizer
	datastore database.Persister
	storer    storage.Storer
)

// Start wires the services and runs the web server until interrupted.
func Start(cfg config.AppConfig) {
	config.Current = cfg

	initServices(cfg)

	startJanitor()

	pub := []middleware.Middleware{
		middleware.Cors(),
		middleware.Logs(applog),
	}

	http.Handle("/storage/sign", middleware.Chain(http.HandlerFunc((&signer{}).sign), pub...))
	http.Handle("/storage/upload", middleware.Chain(http.HandlerFunc(upload), pub...))
	http.Handle("/storage/delete", middleware.Chain(http.HandlerFunc(deleteFile), pub...))
	http.Handle("/notify", middleware.Chain(http.HandlerFunc(notify), pub...))

	http.HandleFunc("/ping", ping)

	// graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		<-c
		cancel()
	}()

	port := cfg.Port
	if port == "" {
		port = "8099"
	}

	httpsvr := &http.Server{
		Addr: ":" + port,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpsvr.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return httpsvr.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		applog.Info().Msgf("exit reason: %s", err)
	}
}

func initServices(cfg config.AppConfig) {
	applog = logger.Get(cfg)

	if cfg.AppEnv == "dev" && cfg.RedisURL == "" && cfg.RedisHost == "" {
		volatile = cache.NewDevCache()
	} else {
		volatile = cache.NewCache(applog)
	}

	if strings.EqualFold(cfg.DataStore, database.DataStoreSQLite) {
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			applog.Fatal().Err(err).Msg("failed to open the sqlite database")
		}

		datastore, err = sqlite.New(db, applog)
		if err != nil {
			applog.Fatal().Err(err).Msg("failed to prepare the sqlite database")
		}
	} else {
		datastore = memory.New()
	}

	if strings.EqualFold(cfg.StorageProvider, storage.StorageProviderS3) {
		storer = storage.S3{}
	} else {
		storer = storage.Local{}
	}
}

func ping(w http.ResponseWriter, r *http.Request) {
	if err := datastore.Ping(); err != nil {
		respondErr(w, http.StatusInternalServerError, "data store unreachable, I'm down.")
		return
	}
	respond(w, http.StatusOK, true)
}

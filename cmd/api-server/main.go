package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"baselineexplorer/internal/catalog"
	"baselineexplorer/internal/feed"
	"baselineexplorer/internal/present"
	"baselineexplorer/pkg/database"
	"baselineexplorer/pkg/utils"
)

func main() {
	cfg, err := utils.LoadServerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, src := buildSource(cfg)
	if db != nil {
		defer db.Close()
	}

	cat := catalog.New(nil)
	hub := feed.NewHub(nil)
	hub.Attach(cat)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/", present.PageHandler(cat))
	router.GET("/ws", feed.WSHandler(hub, cat))
	catalog.NewHandler(cat).RegisterRoutes(router.Group(""))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": src.Name()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		if err := cat.LoadErr(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "failed",
				"load_error": err.Error(),
			})
			return
		}
		if !cat.Loaded() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"features":    cat.Stats().Total,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// one-shot load; nothing waits on it, the feed reports completion
	catalog.StartLoad(context.Background(), cat, src, nil)

	tcpSrv := feed.NewServer(cfg.FeedAddr, hub, cat)
	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}

// buildSource maps the configured source list onto catalog sources. The
// sqlite database is opened, and seeded when empty, only if listed.
func buildSource(cfg utils.ServerConfig) (*sql.DB, catalog.Source) {
	var (
		db      *sql.DB
		sources []catalog.Source
	)
	for _, name := range cfg.Sources {
		switch name {
		case utils.SourceSQLite:
			dbCfg := database.DefaultConfig()
			if cfg.DBPath != "" {
				dbCfg.Path = cfg.DBPath
			}
			db = database.MustOpen(dbCfg)

			repo := catalog.NewRepo(db)
			seeded, err := repo.SeedSample(context.Background())
			if err != nil {
				log.Fatalf("seed failed: %v", err)
			}
			if seeded {
				log.Printf("seeded %s with sample features", dbCfg.Path)
			}
			sources = append(sources, repo)
		case utils.SourceJSON:
			sources = append(sources, catalog.JSONFileSource{Path: cfg.JSONPath})
		case utils.SourceHTTP:
			sources = append(sources, catalog.NewHTTPSource(cfg.RemoteURL))
		case utils.SourceExplorer:
			sources = append(sources, catalog.NewExplorerSource(cfg.RemoteURL))
		default:
			sources = append(sources, catalog.SampleSource{Delay: cfg.LoadDelay})
		}
	}
	if len(sources) == 1 {
		return db, sources[0]
	}
	return db, catalog.NewMergedSource(sources...)
}

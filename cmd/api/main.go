package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/ebooks/backend/internal/config"
	"github.com/zhouzirui/ebooks/backend/internal/embedded"
	"github.com/zhouzirui/ebooks/backend/internal/handler"
	"github.com/zhouzirui/ebooks/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/ebooks/backend/internal/service/catalog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The catalog is read once; a broken document must stop startup
	authors, err := loadCatalog(cfg.Catalog)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	store := catalog.NewMemoryStore(authors, catalog.WithLocale(cfg.Catalog.Locale))
	log.Printf("catalog loaded: %d authors, collation %s", store.Len(), cfg.Catalog.Locale)

	assets, err := loadAssets(cfg.Catalog)
	if err != nil {
		log.Fatalf("failed to load public assets: %v", err)
	}

	catalogSvc := catalogService.NewService(store)
	router := handler.NewRouter(catalogSvc, assets, cfg.API)

	startServer(ctx, cfg.Server, router)
}

func loadCatalog(cfg config.CatalogConfig) ([]catalog.Author, error) {
	if cfg.Path == "" {
		return catalog.LoadFS(embedded.FS, embedded.CatalogFile)
	}
	return catalog.LoadFile(cfg.Path)
}

func loadAssets(cfg config.CatalogConfig) (fs.FS, error) {
	if cfg.PublicDir == "" {
		return embedded.Public()
	}

	info, err := os.Stat(cfg.PublicDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("PUBLIC_DIR %q is not a directory", cfg.PublicDir)
	}
	return os.DirFS(cfg.PublicDir), nil
}

const shutdownTimeout = 10 * time.Second

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("ebooks catalog listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down: %v", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown incomplete: %v", err)
		}
		return ignoreServerClosed(<-errCh)
	case err := <-errCh:
		return ignoreServerClosed(err)
	}
}

func ignoreServerClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

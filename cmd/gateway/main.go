package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"springjewels-storefront/internal/backend"
	"springjewels-storefront/internal/cart"
	"springjewels-storefront/internal/config"
	"springjewels-storefront/internal/db"
	"springjewels-storefront/internal/httpserver"
	"springjewels-storefront/internal/payment"
	"springjewels-storefront/internal/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[gateway] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	backendClient := backend.New(cfg.BackendBaseURL, logger)
	paypal := payment.NewPayPal(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalSecret, logger)

	// Carts live in Postgres when a DSN is configured, on disk otherwise.
	var carts cart.Stores
	var dbpool *pgxpool.Pool
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		carts = cart.NewPostgresStores(pool, logger)
	} else {
		carts = cart.NewFileStores(cfg.CartDir, logger)
	}

	// Wishlist snapshots go to Redis when configured so cached heart-icon
	// state survives gateway restarts.
	newWishlistStore := func(owner string) wishlist.Store {
		return wishlist.NewMemoryStore()
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		newWishlistStore = func(owner string) wishlist.Store {
			return wishlist.NewRedisStore(rdb, owner, cfg.WishlistTTL, logger)
		}
	}
	wishlists := wishlist.NewSessions(newWishlistStore, backendClient, cfg.WishlistTTL, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Backend:   backendClient,
		Carts:     carts,
		Wishlists: wishlists,
		Payments:  paypal,
		USDRate:   cfg.USDRate,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

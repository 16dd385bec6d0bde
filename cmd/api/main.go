package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kadrio.org/internal/auth"
	"kadrio.org/internal/employee"
	"kadrio.org/internal/httpapi"
	"kadrio.org/internal/obs"
	"kadrio.org/internal/store/pg"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	var (
		pgStore   *pg.Store
		userStore auth.UserStore
		empStore  employee.Store
		probe     httpapi.ReadyProbe
	)
	if dsn := os.Getenv("KADRIO_PG_DSN"); dsn != "" {
		var err error
		pgStore, err = pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		userStore = pgStore.Users()
		empStore = pgStore.Employees()
		probe = httpapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		// No DSN: in-process stores for local development.
		userStore = auth.NewInMemoryUsers()
		empStore = employee.NewInMemory()
	}

	authSvc, err := auth.NewService(userStore)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	empSvc, err := employee.NewService(empStore)
	if err != nil {
		log.Fatalf("employee service: %v", err)
	}

	api := httpapi.New(httpapi.Config{
		ReadyProbe:    probe,
		Version:       version,
		Auth:          authSvc,
		Employees:     empSvc,
		RateBurst:     envInt("KADRIO_RATE_BURST", 50),
		RatePerSecond: envInt("KADRIO_RATE_PER_SECOND", 25),
	})

	addr := os.Getenv("KADRIO_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting kadrio-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if pgStore != nil {
		_ = pgStore.Close()
	}
	log.Println("Stopped")
}

func envInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Fatalf("%s: invalid value %q", name, raw)
	}
	return v
}

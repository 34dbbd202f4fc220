package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/testsupport/fakeapi"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	seed := flag.Bool("seed", true, "load demo records on start")
	verbose := flag.Bool("verbose", false, "log every request")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to set up logging: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	api := fakeapi.New(fakeapi.WithLogger(logger))
	if *seed {
		api.SeedDemo()
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Printf("fake finance API listening on http://%s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to serve: %v", err)
	}
}

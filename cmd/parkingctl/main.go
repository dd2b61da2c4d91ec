package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"parking-api/config"
	"parking-api/internal/apiclient"
	"parking-api/internal/tokenstore"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("parkingctl: ")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to read .env: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Client.BaseURL == "" {
		log.Fatalf("%s is not set", config.BaseURLEnv)
	}

	tokens, err := tokenstore.Open(cfg.Client.TokenStore)
	if err != nil {
		log.Fatalf("failed to open token store: %v", err)
	}

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.Client.BaseURL,
		Headers: cfg.Client.Headers,
		Timeout: cfg.Client.Timeout,
		Proxy:   cfg.Client.HTTPProxy,
		Debug:   cfg.Client.Debug,
	}, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &cli{client: client, tokens: tokens, out: os.Stdout}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if body, ok := apiclient.AsErrorResponse(err); ok {
			log.Fatalf("error: %s", body.Error)
		}
		log.Fatalf("error: %v", err)
	}
}

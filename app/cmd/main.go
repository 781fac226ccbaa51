package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rockyxcoded/Example-PDF-vector-search/app/server"
	"github.com/rockyxcoded/Example-PDF-vector-search/config"
	"github.com/rockyxcoded/Example-PDF-vector-search/extract"
	"github.com/rockyxcoded/Example-PDF-vector-search/model"
	"github.com/rockyxcoded/Example-PDF-vector-search/pipeline"
	"github.com/rockyxcoded/Example-PDF-vector-search/store"
)

func init() {
	// env vars may also come from the environment directly
	_ = godotenv.Load()
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration: ", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal("error creating upload directory: ", err)
	}

	pg, err := store.NewPostgresStore(ctx, cfg.ConnString(), store.ConnMode(cfg.ConnMode), cfg.EmbeddingDim)
	if err != nil {
		log.Fatal("error connecting to Postgres: ", err)
	}
	defer pg.Close()

	if err := pg.Init(ctx); err != nil {
		log.Fatal("error initializing schema: ", err)
	}

	p := pipeline.New(
		extract.NewPDFExtractor(),
		model.NewOpenAIEmbedder(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.EmbeddingModel),
		model.NewOpenAICompleter(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ChatModel, cfg.MaxTokens, cfg.Temperature),
		pg,
		pipeline.Options{
			ChunkSize:    cfg.ChunkSize,
			AnswerLimit:  cfg.AnswerLimit,
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: cfg.InitialDelay,
		},
	)

	s := server.NewServer(cfg.ListenAddr, cfg.UploadDir, p, pg)
	go s.Run()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	log.Println("Received shutdown signal, shutting down server...")
	s.Stop()
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Alex-dot-c/crypto-track/internal/app"
	"github.com/Alex-dot-c/crypto-track/internal/config"
	"github.com/Alex-dot-c/crypto-track/internal/handler"
	"github.com/Alex-dot-c/crypto-track/internal/insight"
	"github.com/Alex-dot-c/crypto-track/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	recorder := metrics.New()

	marketClient, closeMarket, err := app.NewMarketClient(ctx, cfg, recorder)
	if err != nil {
		log.Fatalf("error creating market client: %v", err)
	}
	defer closeMarket()

	summarizer := app.NewSummarizer(cfg, recorder)
	slog.Info("ai provider configured", "provider", summarizer.Name())

	marketHandler := handler.NewMarketHandler(marketClient)
	insightHandler := handler.NewInsightHandler(insight.NewAggregator(marketClient, summarizer))

	r := gin.New()
	r.Use(gin.Logger(), handler.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", handler.GetIndex)
	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(recorder.Handler()))
	r.GET("/api/coins", marketHandler.GetCoins)
	r.GET("/api/coin/:id/history", marketHandler.GetCoinHistory)
	r.POST("/api/grok", insightHandler.PostGrok)

	slog.Info("starting server", "addr", cfg.Addr())

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

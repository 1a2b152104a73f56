package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/flwsb/pregnancy-nutrition-bot/bot"
	"github.com/flwsb/pregnancy-nutrition-bot/config"
	"github.com/flwsb/pregnancy-nutrition-bot/controllers"
	"github.com/flwsb/pregnancy-nutrition-bot/routes"
	"github.com/flwsb/pregnancy-nutrition-bot/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.InitLogger(cfg.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	if err := config.InitDB(cfg.DatabasePath); err != nil {
		logger.Fatalf("Failed to init database: %v", err)
	}

	nutrition, err := services.NewNutritionService(cfg.NutritionBasePath)
	if err != nil {
		logger.Fatalf("Failed to load nutrition base: %v", err)
	}

	openai := services.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.VisionModel, cfg.TextModel, cfg.TranscribeModel)
	diary := services.NewDiaryService(config.DB)
	analyzer := services.NewAnalyzerService()
	profile := services.NewProfileService(cfg.PregnancyStart)

	b, err := bot.New(cfg.TelegramToken, logger, openai, nutrition, diary, analyzer, profile)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Read-only status API next to the bot.
	dc := controllers.NewDiaryController(diary, analyzer, nutrition, profile)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: routes.SetupRouter(dc),
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("http server stopped")
		}
	}()

	logger.Info("bot starting")
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("bot stopped")
	}

	logger.Info("shutting down")
	if err := httpSrv.Shutdown(context.Background()); err != nil {
		logger.WithError(err).Error("http shutdown")
	}
}

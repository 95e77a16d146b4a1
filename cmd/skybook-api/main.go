// README: Entry point; loads config, wires services, starts the webhook server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybook/internal/ai"
	"skybook/internal/config"
	httptransport "skybook/internal/http"
	"skybook/internal/infra"
	"skybook/internal/lang"
	"skybook/internal/maps"
	"skybook/internal/modules/conversation"
	"skybook/internal/sentiment"
	"skybook/internal/speech"
	"skybook/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	tg := telegram.NewClient(cfg.Telegram.BotToken)

	detector := lang.NewDetector()
	translator, err := lang.NewGoogleTranslator(ctx, cfg.Google.APIKey, detector)
	if err != nil {
		log.Fatalf("translate init: %v", err)
	}

	speechSvc, err := speech.NewService(ctx, cfg.Google.APIKey, tg)
	if err != nil {
		log.Fatalf("speech init: %v", err)
	}

	extractor, err := ai.NewGeminiExtractor(ctx, cfg.Google.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer extractor.Close()

	var cities conversation.CityResolver
	if cfg.Google.MapsKey != "" {
		geo, err := maps.NewGeocodeService(cfg.Google.MapsKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		cities = geo
	}

	convSvc := conversation.NewService(conversation.Deps{
		Store: conversation.NewStore(dbPool),
		Locker: conversation.NewLease(redisClient,
			time.Duration(cfg.Lease.TTLSeconds)*time.Second,
			time.Duration(cfg.Lease.WaitSeconds)*time.Second),
		Extractor:   extractor,
		Classifier:  sentiment.NewClassifier(),
		Translator:  translator,
		Speech:      speechSvc,
		Messenger:   tg,
		Cities:      cities,
		CheckoutURL: cfg.Booking.CheckoutURL,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(convSvc)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

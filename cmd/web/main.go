package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/cart"
	"github.com/ariefcatur/go-storefront.git/internal/catalog"
	"github.com/ariefcatur/go-storefront.git/internal/checkout"
	"github.com/ariefcatur/go-storefront.git/internal/config"
	"github.com/ariefcatur/go-storefront.git/internal/confirm"
	"github.com/ariefcatur/go-storefront.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/session"
	"github.com/ariefcatur/go-storefront.git/internal/stripex"
	"github.com/ariefcatur/go-storefront.git/internal/webhookx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}
	if cfg.SessionSecret == config.DefaultSessionSecret {
		log.Println("WARNING: SESSION_SECRET not set, using insecure default")
	}
	if cfg.StripeWebhookSecret == config.DefaultWebhookSecret {
		log.Println("WARNING: STRIPE_WEBHOOK_SECRET not set, using insecure default")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog: Postgres when configured, built-in seed otherwise.
	cat := catalog.Seed()
	if cfg.PostgresDSN != "" {
		db, err := catalog.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		cat, err = catalog.LoadFromPostgres(ctx, db)
		db.Close() // one-shot load; the catalog is immutable after this
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
	}
	log.Printf("catalog loaded: %d products", cat.Len())

	// Redis: cart store + flash messages.
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Confirmation sink: Kafka when brokers are configured.
	var confirmer confirm.Confirmer = confirm.LogConfirmer{}
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, confirm.TopicCheckoutCompleted, 1024)
		prod.Start(ctx)
		confirmer = &confirm.KafkaConfirmer{Producer: prod, Service: cfg.ServiceName}
	}

	stripeClient := stripex.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.BaseURL)

	router := httpx.NewRouter()
	sh := &httpx.StoreHandler{
		Catalog: cat,
		Carts:   cart.NewRedisStore(rdb),
		Checkout: &checkout.Orchestrator{
			Catalog:  cat,
			Provider: stripeClient,
			Currency: cfg.Currency,
		},
		Sessions: session.NewCodec(cfg.SessionSecret),
		Redis:    rdb,
	}
	sh.Register(router)

	wh := &httpx.WebhookHandler{
		Events: &webhookx.Handler{Verifier: stripeClient, Confirmer: confirmer},
	}
	wh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close() // flush pending confirmations
		cancel()
		prod.WaitClosed()
	}
}

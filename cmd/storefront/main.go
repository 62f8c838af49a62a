package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/razat249/tabletop-reboxing/internal/cache"
	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/catalog"
	"github.com/razat249/tabletop-reboxing/internal/checkout"
	h "github.com/razat249/tabletop-reboxing/internal/http"
	"github.com/razat249/tabletop-reboxing/internal/notify"
	"github.com/razat249/tabletop-reboxing/internal/pricing"
)

type Config struct {
	HTTPPort       string
	DBPath         string
	MigrationsPath string

	// Empty REDIS_ADDR keeps carts in process memory only.
	RedisAddr string

	// Empty AMQP_URL skips queue publishing.
	AMQPUrl string

	// All three EmailJS ids must be set for email dispatch to be enabled.
	EmailServiceID  string
	EmailTemplateID string
	EmailPublicKey  string
	OrderEmail      string

	WhatsAppNumber string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/catalog/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		AMQPUrl:         getEnv("AMQP_URL", ""),
		EmailServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		OrderEmail:      getEnv("ORDER_EMAIL", ""),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "917014186406"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Catalog database
	repo, err := catalog.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	catalogSvc := catalog.NewService(repo)

	// Cart persistence: Redis when configured, process memory otherwise
	var persistence cache.CartPersistence
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		persistence = cache.NewRedisPersistence(redisClient)
		log.Printf("cart persistence: redis at %s", cfg.RedisAddr)
	} else {
		persistence = cache.NewMemoryPersistence()
		log.Printf("cart persistence: in-memory (carts do not survive restarts)")
	}

	carts := cart.NewService(persistence)
	rules := pricing.DefaultRules()

	// Notification transports
	var notifiers notify.Multi
	if cfg.EmailServiceID != "" && cfg.EmailTemplateID != "" && cfg.EmailPublicKey != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(notify.EmailConfig{
			ServiceID:  cfg.EmailServiceID,
			TemplateID: cfg.EmailTemplateID,
			PublicKey:  cfg.EmailPublicKey,
			ToEmail:    cfg.OrderEmail,
		}))
		log.Printf("order notifications: emailjs enabled")
	}
	if cfg.AMQPUrl != "" {
		conn, err := amqp.Dial(cfg.AMQPUrl)
		if err != nil {
			log.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer conn.Close()

		amqpNotifier, err := notify.NewAMQPNotifier(conn)
		if err != nil {
			log.Fatalf("Failed to set up AMQP notifier: %v", err)
		}
		defer amqpNotifier.Close()
		notifiers = append(notifiers, amqpNotifier)
		log.Printf("order notifications: amqp queue %s", notify.OrderPlacedQueue)
	}

	var notifier notify.Notifier = notifiers
	if len(notifiers) == 0 {
		notifier = notify.LogNotifier{}
		log.Printf("order notifications: log only")
	}

	checkouts := checkout.NewManager(carts, rules, notifier)

	// Setup router
	router := h.NewRouter(
		h.NewCatalogHandler(catalogSvc),
		h.NewCartHandler(carts, catalogSvc, rules),
		h.NewCheckoutHandler(checkouts, carts, cfg.WhatsAppNumber),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatchat-order/config"
	httpapi "chatchat-order/order-svc/internal/api/http"
	"chatchat-order/order-svc/internal/service"
	"chatchat-order/order-svc/internal/storage"
)

const tallyTTL = 7 * 24 * time.Hour

func buildStore(cfg config.Config) (service.Store, func()) {
	if missing := cfg.MissingStoreCredentials(); len(missing) > 0 {
		log.Printf("Warning: data store not configured, missing %v", missing)
		return storage.UnconfiguredStore{Missing: missing}, func() {}
	}
	if cfg.StoreURL == config.MemoryStoreURL {
		log.Println("Using in-memory store")
		return storage.NewMemoryStore(nil, nil), func() {}
	}

	db, err := config.OpenPostgres(cfg)
	if err != nil {
		log.Printf("Warning: failed to open data store: %v", err)
		return storage.UnconfiguredStore{Missing: []string{"valid STORE_URL"}}, func() {}
	}
	store := storage.NewPostgresStore(db)
	if cfg.EnsureSchema {
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to ensure schema: %v", err)
		}
	}
	return store, func() { db.Close() }
}

func buildTally(cfg config.Config) (service.Tally, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}
	client, err := config.NewRedis(cfg.RedisAddr)
	if err != nil {
		log.Printf("Warning: failed to connect to Redis, popularity tally disabled: %v", err)
		return nil, func() {}
	}
	return storage.NewRedisTally(client, tallyTTL), func() { client.Close() }
}

func buildPublisher(cfg config.Config) (service.EventPublisher, func()) {
	switch cfg.EventsBroker {
	case "kafka":
		if cfg.KafkaBroker == "" {
			log.Println("Warning: EVENTS_BROKER=kafka but KAFKA_BROKER is empty, events disabled")
			return nil, func() {}
		}
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic)
		return storage.NewKafkaPublisher(writer), func() { writer.Close() }
	case "rabbitmq":
		publisher, err := storage.DialRabbit(cfg.RabbitURL)
		if err != nil {
			log.Printf("Warning: events disabled: %v", err)
			return nil, func() {}
		}
		return publisher, func() { publisher.Close() }
	case "":
		return nil, func() {}
	default:
		log.Printf("Warning: unknown EVENTS_BROKER %q, events disabled", cfg.EventsBroker)
		return nil, func() {}
	}
}

func main() {
	cfg := config.Load()

	store, closeStore := buildStore(cfg)
	defer closeStore()

	tally, closeTally := buildTally(cfg)
	defer closeTally()

	events, closeEvents := buildPublisher(cfg)
	defer closeEvents()

	if cfg.StaffToken == "" {
		log.Println("Warning: STAFF_TOKEN is empty, staff endpoints will refuse every request")
	}

	orders := service.NewOrderService(store, tally, events)
	handler := httpapi.NewHandler(orders, service.TableQR{BaseURL: cfg.OrderPageURL}, httpapi.NewStaffAuth(cfg.StaffToken))
	handler.DebugErrors = cfg.DebugErrors

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		BasePath:       cfg.BasePath,
		RequestTimeout: cfg.StoreTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapi.StartServer(ctx, ":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"cantinho-algarvio/config"
	httpapi "cantinho-algarvio/internal/api/http"
	"cantinho-algarvio/internal/cart"
	"cantinho-algarvio/internal/domain"
	"cantinho-algarvio/internal/notify"
	"cantinho-algarvio/internal/service"
	"cantinho-algarvio/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	redisStore := storage.NewRedisStore(rdb, 30*24*time.Hour)

	ordersWriter := config.NewKafkaWriter(config.OrdersTopic)
	defer ordersWriter.Close()
	reviewsWriter := config.NewKafkaWriter(config.ReviewsTopic)
	defer reviewsWriter.Close()
	publisher := storage.NewKafkaPublisher(ordersWriter, reviewsWriter)

	qr := service.DefaultQRGenerator{BaseURL: baseURL()}

	cartStore := cart.NewStore(redisStore)
	orderService := service.NewOrderService(repo, redisStore, publisher, qr)
	reviewService := service.NewReviewService(repo, redisStore, publisher)
	referenceService := service.NewReferenceService(repo)
	reportsService := service.NewReportsService(db, redisStore)
	dishService := service.NewDishService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := notify.NewListener(
		config.NewKafkaReader(config.OrdersTopic, "admin-notifications"),
		repo, redisStore)
	listener.OnToast = func(n domain.Notification) {
		log.Printf("[toast] %s: %s", n.Title, n.Message)
	}

	go listener.Start(ctx)
	defer listener.Stop()

	ratings := service.NewRatingConsumer(
		config.NewKafkaReader(config.ReviewsTopic, "rating-aggregates"), repo)
	go ratings.Start(ctx)
	defer ratings.Reader.Close()

	handler := &httpapi.Handler{
		Cart:          cartStore,
		DishSource:    repo,
		Dishes:        dishService,
		Orders:        orderService,
		Reviews:       reviewService,
		Reference:     referenceService,
		Reports:       reportsService,
		Notifications: repo,
		Favorites:     redisStore,
	}

	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}

func baseURL() string {
	if url := os.Getenv("PUBLIC_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

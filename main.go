package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/benms/next-tailwind-amazona/config"
	cartControllers "github.com/benms/next-tailwind-amazona/controllers/cart"
	"github.com/benms/next-tailwind-amazona/events"
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/models"
	"github.com/benms/next-tailwind-amazona/repository"
	"github.com/benms/next-tailwind-amazona/routes"
	"github.com/benms/next-tailwind-amazona/services"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config load failed: %v", err)
	}

	appLog := logger.NewLogger()

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Order events are optional; the lifecycle does not depend on them.
	var publisher services.EventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NATS.URL, appLog)
		if err != nil {
			log.Fatalf("❌ NATS connection failed: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	orderRepo := repository.NewGormOrderRepository(db)
	orderService := services.NewOrderService(orderRepo, publisher, appLog, cfg.Orders.RequirePaidDelivery)

	// Carts live in a cookie by default, or server-side in redis.
	cartStorage := cartControllers.CookieFactory()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		cartStorage = cartControllers.RedisFactory(redisClient)
		log.Printf("✅ Carts stored in redis at %s", cfg.Redis.Addr)
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:              db,
		Orders:          orderService,
		CartStorage:     cartStorage,
		Log:             appLog,
		SuperAdminEmail: cfg.Auth.SuperAdminEmail,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

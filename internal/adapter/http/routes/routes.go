package routes

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "waste_negotiation/docs" // This will be auto-generated
	"waste_negotiation/internal/adapter/http/handlers"
	"waste_negotiation/internal/adapter/http/middleware"
	"waste_negotiation/internal/adapter/persistence/repository"
	"waste_negotiation/internal/infrastructure/config"
	"waste_negotiation/internal/infrastructure/database"
	"waste_negotiation/internal/infrastructure/metrics"
	"waste_negotiation/internal/infrastructure/payments"
	"waste_negotiation/internal/usecase"
	"waste_negotiation/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg := config.Load()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(cfg, newStepRepository(cfg), registry)

	log.Printf("[routes] listening port=%d store=%s", cfg.Port, cfg.StoreDriver)
	err := router.Run(":" + strconv.Itoa(cfg.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func newRouter(cfg config.Config, repo interfaces.IStepRepository, registry *prometheus.Registry) *gin.Engine {
	router := gin.New()
	// Client IPs key the rate limiter, so X-Forwarded-For is only read from
	// configured proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("[routes] invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	negotiationUseCase := usecase.NewNegotiationUseCase(repo, nil, metrics.NewNegotiationMetrics(registry))

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), cfg.PaymentMock)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}
	paymentUseCase := usecase.NewPaymentUseCase(negotiationUseCase, paymentGateway)

	negotiationHandler := handlers.NewNegotiationHandler(negotiationUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	limiter := middleware.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addNegotiationRoutes(v1, negotiationHandler, paymentHandler, middleware.RateLimit(limiter))

	return router
}

func newStepRepository(cfg config.Config) interfaces.IStepRepository {
	ctx := context.Background()

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Printf("[routes] using in-memory store; data is lost on restart")
		return repository.NewNegotiationMemoryRepository()
	case config.StorePostgres:
		repo := repository.NewNegotiationPostgresRepository(database.ConnectPostgres())
		if cfg.StoreBootstrap {
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Fatalf("failed to bootstrap postgres schema: %v", err)
			}
		}
		return repo
	case config.StoreDynamoDB:
		repo := repository.NewNegotiationDynamoRepository(database.ConnectDynamoDB())
		if cfg.StoreBootstrap {
			if err := repo.EnsureTables(ctx); err != nil {
				log.Fatalf("failed to bootstrap dynamodb tables: %v", err)
			}
		}
		return repo
	default:
		log.Fatalf("unknown store driver %q", cfg.StoreDriver)
		return nil
	}
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

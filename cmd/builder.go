package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"weblarek/api"
	apiauth "weblarek/api/auth"
	apicustomer "weblarek/api/customer"
	"weblarek/api/health"
	apiorder "weblarek/api/order"
	apiproduct "weblarek/api/product"
	apiupload "weblarek/api/upload"
	authapp "weblarek/application/auth"
	customerapp "weblarek/application/customer"
	orderapp "weblarek/application/order"
	productapp "weblarek/application/product"
	uploadapp "weblarek/application/upload"
	"weblarek/config"
	customerdomain "weblarek/domain/customer"
	orderdomain "weblarek/domain/order"
	productdomain "weblarek/domain/product"
	"weblarek/infrastructure/persistence/memory"
	"weblarek/infrastructure/persistence/mongodb"
	"weblarek/infrastructure/storage/local"
	pkgauth "weblarek/pkg/auth"
	"weblarek/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// AppBuilder wires configuration, persistence, services and the HTTP
// surface into a runnable App.
type AppBuilder struct {
	cfg *config.Config
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// repositories groups the persistence ports a build produces.
type repositories struct {
	customers customerdomain.Repository
	orders    orderdomain.Repository
	products  productdomain.Repository
}

// Build creates the App instance
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	var (
		client *mongo.Client
		repos  repositories
		pinger health.Pinger
	)

	switch b.cfg.Database.Type {
	case "memory":
		logger.Info("Using in-memory persistence layer")
		repos = repositories{
			customers: memory.NewCustomerRepository(),
			orders:    memory.NewOrderRepository(),
			products:  memory.NewProductRepository(),
		}
	default:
		client, repos = b.connectMongo()
		pinger = mongoPinger{client: client}
	}

	tokens := pkgauth.NewTokenManager(pkgauth.TokenConfig{
		AccessSecret:  b.cfg.Auth.AccessSecret,
		AccessExpiry:  b.cfg.Auth.AccessExpiry,
		RefreshSecret: b.cfg.Auth.RefreshSecret,
		RefreshExpiry: b.cfg.Auth.RefreshExpiry,
		Issuer:        b.cfg.Auth.Issuer,
	})

	authService := authapp.NewService(repos.customers, tokens)
	customerService := customerapp.NewService(repos.customers)
	orderService := orderapp.NewService(repos.orders, repos.products)
	productService := productapp.NewService(repos.products)
	uploadService := uploadapp.NewService(b.cfg.Upload, local.New())

	controllers := api.Controllers{
		Health:   health.NewController(b.cfg, pinger),
		Auth:     apiauth.NewController(authService),
		Customer: apicustomer.NewController(customerService),
		Order:    apiorder.NewController(orderService),
		Product:  apiproduct.NewController(productService),
		Upload:   apiupload.NewController(uploadService),
	}

	router := api.NewRouter(b.cfg, controllers, tokens, repos.customers)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		client: client,
	}
}

func (b *AppBuilder) connectMongo() (*mongo.Client, repositories) {
	logger.Info("Using document store persistence layer",
		zap.String("database", b.cfg.Database.Database))

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Database.ConnectTimeout)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, &b.cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	logger.Info("Connected to document store successfully")

	return client, repositories{
		customers: mongodb.NewCustomerRepository(db),
		orders:    mongodb.NewOrderRepository(db),
		products:  mongodb.NewProductRepository(db),
	}
}

// mongoPinger adapts the driver client to the health check port.
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kdu-dev/painel-api/internal/application/auth"
	"github.com/kdu-dev/painel-api/internal/application/service"
	infrapdf "github.com/kdu-dev/painel-api/internal/infrastructure/pdf"
	"github.com/kdu-dev/painel-api/internal/infrastructure/postgres"
	"github.com/kdu-dev/painel-api/internal/infrastructure/totvs"
	httpRouter "github.com/kdu-dev/painel-api/internal/interfaces/http"
	"github.com/kdu-dev/painel-api/pkg/config"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	observationRepo := postgres.NewObservationRepository(pool)

	erpClient := totvs.NewClient(cfg.ERP, log)

	productSvc := service.NewProductService(erpClient, log)
	fabricReport := infrapdf.NewFabricReportGenerator(cfg.App.Name)
	fabricSvc := service.NewFabricService(erpClient, fabricReport, log)
	customerSvc := service.NewCustomerService(erpClient, log)
	receivableSvc := service.NewReceivableService(erpClient, cfg.ERP.CompanyCode, log)
	fiscalSvc := service.NewFiscalService(erpClient, totvs.SummarizeInvoiceXML, log)
	observationSvc := service.NewObservationService(observationRepo, log)
	userSvc := service.NewUserService(userRepo, log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // relatórios e DANFE podem demorar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductSvc:     productSvc,
		FabricSvc:      fabricSvc,
		CustomerSvc:    customerSvc,
		ReceivableSvc:  receivableSvc,
		FiscalSvc:      fiscalSvc,
		ObservationSvc: observationSvc,
		UserSvc:        userSvc,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

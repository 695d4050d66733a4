package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/auth"
	"github.com/kdu-dev/painel-api/internal/application/service"
	"github.com/kdu-dev/painel-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductSvc     *service.ProductService
	FabricSvc      *service.FabricService
	CustomerSvc    *service.CustomerService
	ReceivableSvc  *service.ReceivableService
	FiscalSvc      *service.FiscalService
	ObservationSvc *service.ObservationService
	UserSvc        *service.UserService
	JWTSecret      string
}

// Router registra as rotas da API. Cada grupo de negócio é protegido pelo
// módulo de permissão correspondente; a administração de usuários é só admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos: matriz de saldos cor × tamanho
	products := protected.Group("/products", RequirePermission(entity.PermissionProducts))
	productHandler := NewProductHandler(deps.ProductSvc)
	products.Get("/:referenceCode/balance-matrix", productHandler.BalanceMatrix)

	// Observações andam junto com o módulo de produtos
	observations := protected.Group("/observations", RequirePermission(entity.PermissionProducts))
	observationHandler := NewObservationHandler(deps.ObservationSvc)
	observations.Post("/", observationHandler.Create)
	observations.Get("/", observationHandler.ListByReference)
	observations.Get("/pending", observationHandler.Pending)
	observations.Post("/pending-counts", observationHandler.PendingCounts)
	observations.Post("/:id/resolve", observationHandler.Resolve)
	observations.Post("/:id/unresolve", observationHandler.Unresolve)

	// Tecidos: listagem com custo/ficha técnica e relatório PDF
	fabrics := protected.Group("/fabrics", RequirePermission(entity.PermissionFabrics))
	fabricHandler := NewFabricHandler(deps.FabricSvc)
	fabrics.Get("/", fabricHandler.List)
	fabrics.Get("/report.pdf", fabricHandler.Report)

	// Painel de clientes
	customers := protected.Group("/customers", RequirePermission(entity.PermissionCustomerPanel))
	customerHandler := NewCustomerHandler(deps.CustomerSvc)
	customers.Get("/:code/statistics", customerHandler.Statistics)
	customers.Get("/:identifier", customerHandler.Details)

	// Contas a receber
	receivables := protected.Group("/receivables", RequirePermission(entity.PermissionAccountsReceivable))
	receivableHandler := NewReceivableHandler(deps.ReceivableSvc)
	receivables.Post("/search", receivableHandler.Search)
	receivables.Post("/bank-slip", receivableHandler.BankSlip)

	// Fiscal: notas, XML e DANFE
	fiscal := protected.Group("/fiscal", RequirePermission(entity.PermissionFiscal))
	fiscalHandler := NewFiscalHandler(deps.FiscalSvc)
	fiscal.Post("/invoices/search", fiscalHandler.Search)
	fiscal.Get("/invoices/:accessKey/xml", fiscalHandler.XML)
	fiscal.Get("/invoices/:accessKey/xml/summary", fiscalHandler.XMLSummary)
	fiscal.Get("/invoices/:accessKey/danfe", fiscalHandler.Danfe)

	// Usuários (somente admin)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserSvc)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}

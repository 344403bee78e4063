package server

import (
	"restaurant-orders/internal/handler"
	"restaurant-orders/internal/metrics"
	appmiddleware "restaurant-orders/internal/middleware"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	auth           *appmiddleware.Auth
	userHandler    *handler.UserHandler
	paymentHandler *handler.PaymentHandler
	menuHandler    *handler.MenuHandler
	cartHandler    *handler.CartHandler
	collector      *metrics.Collector
}

func NewServer(
	tokenService service.TokenService,
	userService service.UserService,
	paymentService service.PaymentService,
	menuService service.MenuService,
	cartService service.CartService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	collector := metrics.NewCollector()
	e.Use(collector.Middleware())

	s := &Server{
		echo:           e,
		auth:           appmiddleware.NewAuth(tokenService, userService),
		userHandler:    handler.NewUserHandler(userService, tokenService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		menuHandler:    handler.NewMenuHandler(menuService),
		cartHandler:    handler.NewCartHandler(cartService),
		collector:      collector,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(s.collector.Handler()))

	api := s.echo.Group("/api/v1")

	verify := s.auth.Authenticate()
	admin := s.auth.RequireAdmin()

	// -------- credentials / identities --------
	api.POST("/token", s.userHandler.IssueToken)
	api.POST("/users", s.userHandler.Register)
	api.GET("/users", s.userHandler.List, verify, admin)
	api.GET("/users/admin/:email", s.userHandler.CheckAdmin, verify, s.auth.RequireSelf("email"))
	api.PATCH("/users/admin/:id", s.userHandler.Promote, verify, admin)
	api.DELETE("/users/:id", s.userHandler.Delete, verify, admin)

	// -------- menu / reviews --------
	api.GET("/menu", s.menuHandler.List)
	api.GET("/menu/:id", s.menuHandler.Get)
	api.POST("/menu", s.menuHandler.Create, verify, admin)
	api.PATCH("/menu/:id", s.menuHandler.Update, verify, admin)
	api.DELETE("/menu/:id", s.menuHandler.Delete, verify, admin)
	api.GET("/reviews", s.menuHandler.ListReviews)
	api.POST("/reviews", s.menuHandler.AddReview)

	// -------- cart --------
	api.GET("/cart", s.cartHandler.List)
	api.POST("/cart", s.cartHandler.Add)
	api.DELETE("/cart/:id", s.cartHandler.Remove)

	// -------- settlement --------
	api.POST("/charge-intent", s.paymentHandler.CreateChargeIntent, verify)
	api.POST("/payments", s.paymentHandler.RecordPayment, verify)
	api.GET("/payments/:email", s.paymentHandler.ListPayments, verify, s.auth.RequireSelf("email"))
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

package server

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/config"
	"github.com/snazzify/snazzpay-backend/internal/gateway"
	"github.com/snazzify/snazzpay-backend/internal/handler"
	appmw "github.com/snazzify/snazzpay-backend/internal/middleware"
	"github.com/snazzify/snazzpay-backend/internal/notify"
	"github.com/snazzify/snazzpay-backend/internal/repository"
	"github.com/snazzify/snazzpay-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e         *echo.Echo
	orderRepo repository.OrderRepository
	leadRepo  repository.LeadRepository
	cardRepo  repository.CardRepository
	noteRepo  repository.NotificationRepository
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-API-Key"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "snazzify.in") || strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	var gw gateway.Gateway
	client, err := gateway.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	if err != nil {
		// Authorize/capture/refund calls will surface this per request.
		log.Printf("payment gateway not configured: %v", err)
	} else {
		gw = client
	}

	var sender notify.Sender
	if cfg.NotifyAPIURL != "" {
		sender = notify.NewHTTPSender(cfg.NotifyAPIURL, cfg.NotifyAPIKey)
	} else {
		sender = notify.LogSender{}
	}

	orderRepo := repository.NewOrderRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	cardRepo := repository.NewCardRepository(db)
	noteRepo := repository.NewNotificationRepository(db)

	noteSvc := service.NewNotificationService(noteRepo)
	if cfg.RedisAddr != "" {
		noteSvc.SetRedisClient(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	cardSvc := service.NewCardService(cardRepo)
	orderSvc := service.NewOrderService(orderRepo, cardSvc, gw, sender, noteSvc, cfg.Currency)
	leadSvc := service.NewLeadService(leadRepo, orderRepo, noteSvc)

	orderHandler := handler.NewOrderHandler(orderSvc)
	leadHandler := handler.NewLeadHandler(leadSvc)
	cardHandler := handler.NewCardHandler(cardSvc)
	noteHandler := handler.NewNotificationHandler(noteSvc)

	defaultRate, err := decimal.NewFromString(cfg.DefaultCommissionPct)
	if err != nil {
		log.Printf("invalid DEFAULT_COMMISSION_PCT %q, using 5", cfg.DefaultCommissionPct)
		defaultRate = decimal.NewFromInt(5)
	}
	reportHandler := handler.NewReportHandler(orderRepo, leadRepo, defaultRate)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	ops := appmw.RequireAPIKey(cfg.OpsAPIKey)

	api := e.Group("/api")
	api.POST("/orders", orderHandler.Create, ops)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:ref", orderHandler.Get)
	api.POST("/orders/:ref/payment", orderHandler.RecordPayment, ops)
	api.POST("/orders/:ref/dispatch", orderHandler.Dispatch, ops)
	// Token-authorized, customer-facing: the cancellation id is the secret.
	api.POST("/orders/:ref/cancel", orderHandler.Cancel)
	api.POST("/orders/:ref/cancel-with-fee", orderHandler.CancelWithFee, ops)

	api.POST("/leads", leadHandler.Create)
	api.GET("/leads", leadHandler.List)
	api.POST("/leads/:id/verify", leadHandler.VerifyIntent, ops)
	api.POST("/leads/:id/push", leadHandler.PushToSeller, ops)
	api.POST("/leads/:id/convert", leadHandler.Convert, ops)

	api.GET("/cards/:phone", cardHandler.GetByPhone)

	api.GET("/reports/summary", reportHandler.Summary)
	api.GET("/reports/commission", reportHandler.Commission)

	api.GET("/notifications", noteHandler.List)
	api.POST("/notifications/read", noteHandler.MarkAllRead)

	return &Server{e: e, orderRepo: orderRepo, leadRepo: leadRepo, cardRepo: cardRepo, noteRepo: noteRepo}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.orderRepo.SetDB(db)
	s.leadRepo.SetDB(db)
	s.cardRepo.SetDB(db)
	s.noteRepo.SetDB(db)
}

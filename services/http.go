package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/scanplay-app/scanplay_api/docs"
	"github.com/scanplay-app/scanplay_api/services/handlers"
	"github.com/scanplay-app/scanplay_api/shared"
)

// HttpService wires every handler onto one fiber app. Route groups split by
// trust level: /api/v1/public/* is anonymous, /v1/request/ authenticates per
// envelope, and the rest of /api/v1 sits behind bearer auth.
type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	qrSvc         *QRService
	flowSvc       *ScanFlowService
	customerSvc   *CustomerService
	gameSvc       *GameService
	campaignSvc   *CampaignService
	rpcSvc        *RPCService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.qrSvc = svc.Service(QR_SVC).(*QRService)
	svc.flowSvc = svc.Service(SCAN_FLOW_SVC).(*ScanFlowService)
	svc.customerSvc = svc.Service(CUSTOMER_SVC).(*CustomerService)
	svc.gameSvc = svc.Service(GAME_SVC).(*GameService)
	svc.campaignSvc = svc.Service(CAMPAIGN_SVC).(*CampaignService)
	svc.rpcSvc = svc.Service(RPC_SVC).(*RPCService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      "ScanPlay API",
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	svc.registerRoutes(app)

	svc.app = app
	log.WithField("port", svc.port).Info("HTTP service listening")
	return app.Listen(fmt.Sprintf(":%d", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	publicHandler := handlers.NewPublicHandler(svc.qrSvc, svc.flowSvc, svc.customerSvc, svc.gameSvc)
	dashboardHandler := handlers.NewDashboardHandler(svc.campaignSvc, svc.qrSvc, svc.customerSvc, svc.gameSvc)
	rpcHandler := handlers.NewRPCHandler(svc.rpcSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	// Signed envelope gateway
	app.Post("/v1/request/", svc.rateLimitSvc.RateLimit("rpc"), rpcHandler.Handle)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Merchant auth
	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/verify-email", authHandler.VerifyEmail)
	v1.Post("/resend-verification", svc.rateLimitSvc.RateLimit("resend_verification"), authHandler.ResendVerification)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)

	// Anonymous scan flow
	public := v1.Group("/public")
	public.Post("/qr/:uniqueId/validate", svc.rateLimitSvc.RateLimit("qr_validate"), publicHandler.ValidateQR)
	public.Post("/customers/find", svc.rateLimitSvc.RateLimit("public_register"), publicHandler.FindCustomer)
	public.Post("/customers", svc.rateLimitSvc.RateLimit("public_register"), publicHandler.UpsertCustomer)
	public.Get("/players/:customerId", publicHandler.PlayerProfile)
	public.Post("/scan/:uniqueId", svc.rateLimitSvc.RateLimit("qr_validate"), publicHandler.StartScan)
	public.Get("/scan/:scanId", publicHandler.GetScan)
	public.Post("/scan/:scanId/register", svc.rateLimitSvc.RateLimit("public_register"), publicHandler.SubmitRegistration)
	public.Get("/games", publicHandler.ListGames)
	public.Post("/games/play", svc.rateLimitSvc.RateLimit("game_track"), publicHandler.PlayGame)
	public.Post("/games/track", svc.rateLimitSvc.RateLimit("game_track"), publicHandler.TrackGame)
	public.Get("/leaderboard/:merchantId", publicHandler.Leaderboard)

	// Legacy proxy-era aliases for the game endpoints
	v1.Post("/game/play", svc.rateLimitSvc.RateLimit("game_track"), publicHandler.PlayGame)
	v1.Post("/game/track", svc.rateLimitSvc.RateLimit("game_track"), publicHandler.TrackGame)

	// Merchant dashboard
	auth := v1.Group("", svc.authSvc.RequiredAuth())
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session/verify", authHandler.VerifySession)
	auth.Get("/audit-logs", authHandler.GetAuditLogs)

	auth.Post("/campaigns", dashboardHandler.CreateCampaign)
	auth.Get("/campaigns", dashboardHandler.ListCampaigns)
	auth.Get("/campaigns/:campaignId", dashboardHandler.GetCampaign)
	auth.Put("/campaigns/:campaignId/active", dashboardHandler.SetCampaignActive)
	auth.Post("/campaigns/:campaignId/artwork", dashboardHandler.UploadArtwork)
	auth.Get("/campaigns/:campaignId/qr", dashboardHandler.ListCampaignQRCodes)
	auth.Delete("/assets/:assetId", dashboardHandler.DeleteAsset)

	auth.Post("/qr/batches", dashboardHandler.CreateQRBatch)
	auth.Delete("/qr/:codeId", dashboardHandler.DeactivateQRCode)

	auth.Get("/customers", dashboardHandler.ListCustomers)
	auth.Get("/stats", dashboardHandler.GetStats)
	auth.Get("/leaderboard", dashboardHandler.Leaderboard)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}

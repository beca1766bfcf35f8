package main

import (
	"github.com/scanplay-app/scanplay_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title ScanPlay API
// @version 1.0
// @description QR-driven marketing games backend for merchants.
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.EmailService{},
		&services.GeolocationService{},
		&services.MinIOService{},
		&services.MonitoringService{},
		&services.RateLimitService{},

		&services.AuthService{},
		&services.CustomerService{},
		&services.QRService{},
		&services.GameService{},
		&services.CampaignService{},
		&services.ScanFlowService{},
		&services.RPCService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}

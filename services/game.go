package services

import (
	"math/rand"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/game"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
)

// GameService serves the game catalog, runs server-side playthroughs and
// records finished sessions. Points from a session are credited exactly once:
// the play endpoint scores and tracks in one call, the track endpoint covers
// clients that drove the game themselves.
type GameService struct {
	appContext.DefaultService

	sqlSvc        *PostgresService
	customerSvc   *CustomerService
	monitoringSvc *MonitoringService
}

const GAME_SVC = "game_svc"

func (svc GameService) Id() string {
	return GAME_SVC
}

func (svc *GameService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *GameService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.customerSvc = svc.Service(CUSTOMER_SVC).(*CustomerService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	return svc.seedCatalog()
}

// builtinCatalog lists the shipped games. MaxPoints is the engine's best
// attainable playthrough total, since Track clamps reported scores to it.
func builtinCatalog() []model.Game {
	return []model.Game{
		{Code: game.CodeSpinWheel, Name: "Spin & Win", Icon: "🎡", MaxPoints: game.SpinWheelMaxScore, IsActive: true},
		{Code: game.CodeDice, Name: "Dice Roll", Icon: "🎲", MaxPoints: game.DiceMaxTotal, IsActive: true},
		{Code: game.CodeMemory, Name: "Memory Match", Icon: "🧠", MaxPoints: game.MemoryMaxScore, IsActive: true},
		{Code: game.CodeQuickTap, Name: "Quick Tap", Icon: "⚡", MaxPoints: game.QuickTapMaxScore, IsActive: true},
	}
}

// seedCatalog registers the built-in games so fresh deployments have a
// catalog to attach campaigns to.
func (svc *GameService) seedCatalog() error {
	builtins := builtinCatalog()

	for i := range builtins {
		existing, err := svc.sqlSvc.GetGameByCode(builtins[i].Code)
		if err == nil && existing != nil {
			continue
		}
		if _, err := svc.sqlSvc.CreateGame(&builtins[i]); err != nil {
			log.WithError(err).WithField("code", builtins[i].Code).Error("Failed to seed game catalog")
			return err
		}
	}

	return nil
}

func (svc *GameService) ListGames() ([]dto.GameInfo, error) {
	games, err := svc.sqlSvc.GetActiveGames()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load games")
	}

	out := make([]dto.GameInfo, 0, len(games))
	for _, g := range games {
		out = append(out, dto.GameInfo{
			ID:        g.ID,
			Code:      g.Code,
			Name:      g.Name,
			Icon:      g.Icon,
			Route:     game.RouteForCode(g.Code),
			MaxPoints: g.MaxPoints,
		})
	}
	return out, nil
}

// Play runs one full server-driven playthrough and credits the score.
func (svc *GameService) Play(req dto.PlayGameRequest) (*dto.PlayGameResponse, error) {
	player := game.PlayerFor(req.GameCode)
	if player == nil {
		return nil, shared.NewBadRequestError(nil, "Unknown game code")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := player(rng)

	tracked, err := svc.Track(dto.TrackGameRequest{
		MerchantRef: req.MerchantRef,
		CustomerID:  req.CustomerID,
		QRCode:      req.QRCode,
		GameCode:    req.GameCode,
		Points:      result.Points,
	})
	if err != nil {
		return nil, err
	}

	return &dto.PlayGameResponse{
		GameCode:    result.Code,
		Points:      result.Points,
		Detail:      result.Detail,
		TotalPoints: tracked.TotalPoints,
	}, nil
}

// Track records a finished playthrough. The score is clamped to the game's
// published maximum so a tampered client cannot credit itself arbitrarily.
func (svc *GameService) Track(req dto.TrackGameRequest) (*dto.TrackGameResponse, error) {
	merchantID := req.Resolve()

	points := req.Points
	if points < 0 {
		return nil, shared.NewBadRequestError(nil, "Points cannot be negative")
	}
	if g, err := svc.sqlSvc.GetGameByCode(req.GameCode); err == nil && g.MaxPoints > 0 && points > g.MaxPoints {
		log.WithFields(log.Fields{
			"customer_id": req.CustomerID,
			"game_code":   req.GameCode,
			"points":      points,
			"max":         g.MaxPoints,
		}).Warn("Reported score exceeds game maximum, clamping")
		points = g.MaxPoints
	}

	existing, err := svc.sqlSvc.GetCustomer(req.CustomerID)
	if err != nil {
		return nil, shared.NewNotFoundError(nil, "Customer not found")
	}
	if existing.MerchantID != merchantID {
		return nil, shared.NewForbiddenError(nil, "Customer belongs to another merchant")
	}

	customer, err := svc.customerSvc.AddPoints(req.CustomerID, req.GameCode, points)
	if err != nil {
		return nil, err
	}

	var qrCodeID string
	if req.QRCode != "" {
		if code, err := svc.sqlSvc.GetQRCodeByUniqueID(req.QRCode); err == nil {
			qrCodeID = code.ID
		}
	}

	if err := svc.sqlSvc.CreateGameCompletion(&model.GameCompletion{
		MerchantID: merchantID,
		CustomerID: customer.ID,
		QRCodeID:   qrCodeID,
		GameCode:   req.GameCode,
		Points:     points,
		TimeSpent:  req.TimeSpent,
	}); err != nil {
		log.WithError(err).WithField("customer_id", customer.ID).Error("Failed to record game completion")
	}

	svc.monitoringSvc.RecordGamePlayed(req.GameCode)
	svc.monitoringSvc.RecordPointsAwarded(merchantID, req.GameCode, points)

	played := svc.customerSvc.gamesPlayed(customer)

	return &dto.TrackGameResponse{
		CustomerID:  customer.ID,
		Points:      points,
		TotalPoints: customer.TotalPoints,
		GamesPlayed: played,
	}, nil
}

// MerchantStats aggregates the dashboard overview numbers.
func (svc *GameService) MerchantStats(merchantID string) (*dto.MerchantStatsResponse, error) {
	totalCustomers, err := svc.sqlSvc.CountMerchantCustomers(merchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to count customers")
	}

	totalScans, err := svc.sqlSvc.CountMerchantScans(merchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to count scans")
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	scansToday, err := svc.sqlSvc.CountMerchantScansSince(merchantID, startOfDay)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to count scans")
	}

	totalPoints, err := svc.sqlSvc.SumMerchantPoints(merchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to sum points")
	}

	activeCampaigns, err := svc.sqlSvc.CountActiveCampaigns(merchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to count campaigns")
	}

	return &dto.MerchantStatsResponse{
		MerchantID:      merchantID,
		TotalCustomers:  totalCustomers,
		TotalScans:      totalScans,
		ScansToday:      scansToday,
		TotalPoints:     totalPoints,
		ActiveCampaigns: activeCampaigns,
		GeneratedAt:     now,
	}, nil
}

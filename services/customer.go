package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CustomerService owns player records. Phone is the identity key within a
// merchant: find-or-create never duplicates a player who scans twice. The
// durable row lives in Postgres; a profile snapshot is mirrored into Redis
// under player_<id> for the gallery pages that read without a DB round trip.
type CustomerService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService
}

const CUSTOMER_SVC = "customer_svc"

const playerProfileTTL = 30 * 24 * time.Hour

func (svc CustomerService) Id() string {
	return CUSTOMER_SVC
}

func (svc *CustomerService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CustomerService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// FindByPhone looks a player up by phone within a merchant. When the record
// exists, non-empty identity fields in the request are applied as updates
// before the record is returned.
func (svc *CustomerService) FindByPhone(req dto.FindCustomerRequest) (*dto.CustomerResponse, error) {
	merchantID := req.Resolve()

	customer, err := svc.sqlSvc.GetCustomerByPhone(merchantID, req.Phone)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to look up customer")
	}
	if customer == nil {
		return &dto.CustomerResponse{Found: false, MerchantID: merchantID, Phone: req.Phone}, nil
	}

	changed := false
	if req.Name != "" && req.Name != customer.Name {
		customer.Name = req.Name
		changed = true
	}
	if req.Email != "" && req.Email != customer.Email {
		customer.Email = req.Email
		changed = true
	}
	if req.Instagram != "" && req.Instagram != customer.Instagram {
		customer.Instagram = req.Instagram
		changed = true
	}

	if changed {
		if err := svc.sqlSvc.UpdateCustomer(customer); err != nil {
			return nil, shared.NewInternalError(err, "Failed to update customer")
		}
		svc.mirrorProfile(customer)
	}

	return svc.toResponse(customer, true), nil
}

// Upsert finds or creates a player. Two scanners registering the same phone
// concurrently converge on one row through the unique (merchant, phone) key.
func (svc *CustomerService) Upsert(req dto.UpsertCustomerRequest) (*dto.CustomerResponse, error) {
	merchantID := req.Resolve()

	existing, err := svc.sqlSvc.GetCustomerByPhone(merchantID, req.Phone)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to look up customer")
	}
	if existing != nil {
		return svc.FindByPhone(dto.FindCustomerRequest{
			MerchantRef: req.MerchantRef,
			Phone:       req.Phone,
			Name:        req.Name,
			Email:       req.Email,
			Instagram:   req.Instagram,
		})
	}

	customer := &model.Customer{
		MerchantID:  merchantID,
		Phone:       req.Phone,
		Name:        req.Name,
		Email:       req.Email,
		Instagram:   req.Instagram,
		GamesPlayed: json.RawMessage("[]"),
	}

	created, err := svc.sqlSvc.CreateCustomer(customer)
	if err != nil {
		// Lost the race to another scanner; the row is there now.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE_CONSTRAINT") || strings.Contains(err.Error(), "CONFLICT") {
			return svc.FindByPhone(dto.FindCustomerRequest{
				MerchantRef: req.MerchantRef,
				Phone:       req.Phone,
				Name:        req.Name,
				Email:       req.Email,
				Instagram:   req.Instagram,
			})
		}
		return nil, shared.NewInternalError(err, "Failed to create customer")
	}

	svc.mirrorProfile(created)
	return svc.toResponse(created, false), nil
}

func (svc *CustomerService) Get(customerID string) (*dto.CustomerResponse, error) {
	customer, err := svc.sqlSvc.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return svc.toResponse(customer, true), nil
}

// AddPoints credits a finished playthrough to the player's durable totals.
// The game code joins GamesPlayed once regardless of how many times it is
// replayed.
func (svc *CustomerService) AddPoints(customerID, gameCode string, points int) (*model.Customer, error) {
	customer, err := svc.sqlSvc.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	customer.TotalPoints += points

	played := svc.gamesPlayed(customer)
	seen := false
	for _, code := range played {
		if code == gameCode {
			seen = true
			break
		}
	}
	if !seen {
		played = append(played, gameCode)
		raw, err := json.Marshal(played)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode games played")
		}
		customer.GamesPlayed = raw
	}

	if err := svc.sqlSvc.UpdateCustomer(customer); err != nil {
		return nil, err
	}

	svc.mirrorProfile(customer)

	ctx := context.Background()
	if _, err := svc.redisSvc.ZIncrBy(ctx, leaderboardKey(customer.MerchantID), float64(points), customer.ID); err != nil {
		log.WithError(err).WithField("customer_id", customer.ID).Warn("Failed to update leaderboard")
	}

	return customer, nil
}

func (svc *CustomerService) List(merchantID string, page, limit int) (*dto.CustomerListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	customers, total, err := svc.sqlSvc.GetMerchantCustomers(merchantID, page, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *svc.toResponse(&customers[i], true))
	}

	return &dto.CustomerListResponse{
		Customers: out,
		Total:     int(total),
		Page:      page,
		Limit:     limit,
	}, nil
}

// Leaderboard reads the live sorted set first and falls back to Postgres when
// Redis has nothing for the merchant.
func (svc *CustomerService) Leaderboard(merchantID string, limit int) (*dto.LeaderboardResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ctx := context.Background()
	entries := make([]dto.LeaderboardEntry, 0, limit)

	members, err := svc.redisSvc.ZRevRangeWithScores(ctx, leaderboardKey(merchantID), 0, int64(limit-1))
	if err == nil && len(members) > 0 {
		for i, member := range members {
			customerID, _ := member.Member.(string)
			name := ""
			if customer, err := svc.sqlSvc.GetCustomer(customerID); err == nil {
				name = customer.Name
			}
			entries = append(entries, dto.LeaderboardEntry{
				Rank:        i + 1,
				CustomerID:  customerID,
				Name:        name,
				TotalPoints: int(member.Score),
			})
		}
		return &dto.LeaderboardResponse{MerchantID: merchantID, Entries: entries}, nil
	}

	top, err := svc.sqlSvc.GetTopCustomers(merchantID, limit)
	if err != nil {
		return nil, err
	}
	for i := range top {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			CustomerID:  top[i].ID,
			Name:        top[i].Name,
			TotalPoints: top[i].TotalPoints,
		})
	}

	return &dto.LeaderboardResponse{MerchantID: merchantID, Entries: entries}, nil
}

// PlayerProfile serves the cached player_<id> snapshot, rebuilding it from
// Postgres on a miss.
func (svc *CustomerService) PlayerProfile(customerID string) (*dto.PlayerData, error) {
	ctx := context.Background()

	raw, err := svc.redisSvc.Get(ctx, playerKey(customerID))
	if err == nil && raw != "" {
		profile, err := dto.UnmarshalPlayerData([]byte(raw))
		if err == nil {
			return &profile, nil
		}
		log.WithError(err).WithField("customer_id", customerID).Warn("Corrupt player profile in cache")
	}

	customer, err := svc.sqlSvc.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	profile := svc.profileOf(customer)
	svc.mirrorProfile(customer)
	return &profile, nil
}

func (svc *CustomerService) mirrorProfile(customer *model.Customer) {
	ctx := context.Background()
	profile := svc.profileOf(customer)
	if err := svc.redisSvc.Set(ctx, playerKey(customer.ID), profile, playerProfileTTL); err != nil {
		log.WithError(err).WithField("customer_id", customer.ID).Warn("Failed to cache player profile")
	}
}

func (svc *CustomerService) profileOf(customer *model.Customer) dto.PlayerData {
	return dto.PlayerData{
		Name:        customer.Name,
		Phone:       customer.Phone,
		Instagram:   customer.Instagram,
		MerchantID:  customer.MerchantID,
		Timestamp:   customer.UpdatedAt.UnixMilli(),
		TotalPoints: customer.TotalPoints,
		GamesPlayed: svc.gamesPlayed(customer),
	}
}

func (svc *CustomerService) gamesPlayed(customer *model.Customer) []string {
	var played []string
	if err := json.Unmarshal(customer.GamesPlayed, &played); err != nil || played == nil {
		played = []string{}
	}
	return played
}

func (svc *CustomerService) toResponse(customer *model.Customer, found bool) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          customer.ID,
		MerchantID:  customer.MerchantID,
		Name:        customer.Name,
		Phone:       customer.Phone,
		Email:       customer.Email,
		Instagram:   customer.Instagram,
		TotalPoints: customer.TotalPoints,
		GamesPlayed: svc.gamesPlayed(customer),
		Found:       found,
		CreatedAt:   customer.CreatedAt,
	}
}

func playerKey(customerID string) string {
	return fmt.Sprintf("player_%s", customerID)
}

func leaderboardKey(merchantID string) string {
	return fmt.Sprintf("leaderboard:%s", merchantID)
}

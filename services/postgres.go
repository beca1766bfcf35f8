package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "scanplay_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},
		&model.UserSession{},
		&model.AuthAuditLog{},
		&model.RateLimit{},

		&model.Customer{},
		&model.Campaign{},
		&model.Game{},
		&model.QRCode{},
		&model.ScanEvent{},
		&model.GameCompletion{},
		&model.MediaAsset{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ticker := time.NewTicker(24 * time.Hour)
	go func() {
		for range ticker.C {
			if err := ds.CleanupExpiredSessions(); err != nil {
				log.Printf("Failed to cleanup expired sessions: %v", err)
			}
			if err := ds.CleanupOldRateLimits(); err != nil {
				log.Printf("Failed to cleanup rate limit records: %v", err)
			}
		}
	}()

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "relation") && strings.Contains(err.Error(), "does not exist") {
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *PostgresService) CreateUser(req dto.RegisterMerchantRequest, hashedPassword, verificationCode string) (*model.User, error) {
	codeExpiry := time.Now().Add(15 * time.Minute)
	merchantID, _ := uuid.NewV7()
	user := &model.User{
		ID:                     uuid.New().String(),
		MerchantID:             merchantID.String(),
		Email:                  req.Email,
		BusinessName:           req.BusinessName,
		Password:               hashedPassword,
		Role:                   "merchant",
		IsActive:               true,
		EmailVerified:          false,
		VerificationCode:       verificationCode,
		VerificationCodeExpiry: &codeExpiry,
		FailedAttempts:         0,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}

	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByVerificationCode(email, code string) (*model.User, error) {
	var user model.User
	err := ds.db.Where("email = ? AND verification_code = ?", email, code).First(&user).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?) AND deleted_at IS NULL", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *PostgresService) UpdateLastLogin(userID, ip string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login_at": &now,
		"last_login_ip": ip,
		"updated_at":    now,
	}).Error
}

func (ds *PostgresService) IncrementFailedAttempts(userID string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_attempts": gorm.Expr("failed_attempts + 1"),
		"updated_at":      time.Now(),
	}).Error
}

func (ds *PostgresService) ResetFailedAttempts(userID string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_attempts": 0,
		"locked_until":    nil,
		"updated_at":      time.Now(),
	}).Error
}

func (ds *PostgresService) LockAccount(userID string, lockUntil time.Time) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"locked_until": &lockUntil,
		"updated_at":   time.Now(),
	}).Error
}

func (ds *PostgresService) VerifyUserEmail(userID string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_verified":           true,
		"verification_code":        nil,
		"verification_code_expiry": nil,
		"updated_at":               time.Now(),
	}).Error
}

func (ds *PostgresService) UpdateVerificationCode(userID, code string) error {
	codeExpiry := time.Now().Add(15 * time.Minute)
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"verification_code":        code,
		"verification_code_expiry": &codeExpiry,
		"updated_at":               time.Now(),
	}).Error
}

// ==================== USER SESSION METHODS ====================

func (ds *PostgresService) CreateUserSession(session *model.UserSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = session.CreatedAt.Add(7 * 24 * time.Hour)
	}

	if err := ds.db.Create(session).Error; err != nil {
		return "", ds.HandleError(err)
	}
	return session.ID, nil
}

func (ds *PostgresService) GetSessionByID(sessionID string) (*model.UserSession, error) {
	var session model.UserSession
	err := ds.db.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &session, nil
}

// GetActiveSessionByUser returns the newest live session of a user. The RPC
// gateway uses its SessionSecret to recompute the envelope hash.
func (ds *PostgresService) GetActiveSessionByUser(userID string) (*model.UserSession, error) {
	var session model.UserSession
	err := ds.db.Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, time.Now()).
		Order("last_used DESC").First(&session).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &session, nil
}

func (ds *PostgresService) GetActiveSession(userID, tokenHash string) (*model.UserSession, error) {
	var session model.UserSession
	err := ds.db.Where("user_id = ? AND token_hash = ? AND is_active = ? AND expires_at > ?",
		userID, tokenHash, true, time.Now()).First(&session).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &session, nil
}

func (ds *PostgresService) UpdateSessionLastUsed(sessionID string) error {
	return ds.db.Model(&model.UserSession{}).Where("id = ?", sessionID).Update("last_used", time.Now()).Error
}

func (ds *PostgresService) DeactivateSession(sessionID, userID string) error {
	return ds.db.Model(&model.UserSession{}).Where("id = ? AND user_id = ?", sessionID, userID).Updates(map[string]interface{}{
		"is_active": false,
		"last_used": time.Now(),
	}).Error
}

func (ds *PostgresService) DeactivateAllUserSessions(userID, exceptSessionID string) error {
	query := ds.db.Model(&model.UserSession{}).Where("user_id = ?", userID)
	if exceptSessionID != "" {
		query = query.Where("id != ?", exceptSessionID)
	}

	return query.Updates(map[string]interface{}{
		"is_active": false,
		"last_used": time.Now(),
	}).Error
}

func (ds *PostgresService) GetUserActiveSessions(userID string) ([]model.UserSession, error) {
	var sessions []model.UserSession
	err := ds.db.Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, time.Now()).
		Order("last_used DESC").Find(&sessions).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return sessions, nil
}

func (ds *PostgresService) CleanupExpiredSessions() error {
	return ds.db.Model(&model.UserSession{}).
		Where("expires_at < ?", time.Now()).
		Update("is_active", false).Error
}

// ==================== AUDIT LOG METHODS ====================

func (ds *PostgresService) CreateAuthAuditLog(entry dto.AuthAuditLog) error {
	auditLog := &model.AuthAuditLog{
		ID:        uuid.New().String(),
		Action:    entry.Action,
		IP:        entry.IP,
		Location:  entry.Location,
		UserAgent: entry.UserAgent,
		Timestamp: entry.Timestamp,
		Success:   entry.Success,
		Details:   entry.Details,
	}

	if entry.UserID != "" {
		auditLog.UserID = entry.UserID
	}

	return ds.db.Create(auditLog).Error
}

func (ds *PostgresService) GetUserAuditLogs(userID string, page, limit int) ([]model.AuthAuditLog, int64, error) {
	var logs []model.AuthAuditLog
	var total int64

	ds.db.Model(&model.AuthAuditLog{}).Where("user_id = ?", userID).Count(&total)

	offset := (page - 1) * limit
	err := ds.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error

	if err != nil {
		return nil, 0, ds.HandleError(err)
	}

	return logs, total, nil
}

// ==================== CUSTOMER METHODS ====================

func (ds *PostgresService) CreateCustomer(customer *model.Customer) (*model.Customer, error) {
	if customer.ID == "" {
		id, _ := uuid.NewV7()
		customer.ID = id.String()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	if customer.GamesPlayed == nil {
		customer.GamesPlayed = []byte("[]")
	}

	if err := ds.db.Create(customer).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return customer, nil
}

func (ds *PostgresService) GetCustomer(id string) (*model.Customer, error) {
	var customer model.Customer
	if err := ds.db.Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &customer, nil
}

func (ds *PostgresService) GetCustomerByPhone(merchantID, phone string) (*model.Customer, error) {
	var customer model.Customer
	err := ds.db.Where("merchant_id = ? AND phone = ?", merchantID, phone).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ds.HandleError(err)
	}
	return &customer, nil
}

func (ds *PostgresService) UpdateCustomer(customer *model.Customer) error {
	customer.UpdatedAt = time.Now()
	if err := ds.db.Save(customer).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetMerchantCustomers(merchantID string, page, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	ds.db.Model(&model.Customer{}).Where("merchant_id = ?", merchantID).Count(&total)

	offset := (page - 1) * limit
	err := ds.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, 0, ds.HandleError(err)
	}

	return customers, total, nil
}

func (ds *PostgresService) GetTopCustomers(merchantID string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	if err := ds.db.Where("merchant_id = ?", merchantID).
		Order("total_points DESC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return customers, nil
}

// ==================== CAMPAIGN METHODS ====================

func (ds *PostgresService) CreateCampaign(campaign *model.Campaign) (*model.Campaign, error) {
	if campaign.ID == "" {
		id, _ := uuid.NewV7()
		campaign.ID = id.String()
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	if err := ds.db.Create(campaign).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return campaign, nil
}

func (ds *PostgresService) GetCampaign(id string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := ds.db.Where("id = ?", id).First(&campaign).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &campaign, nil
}

func (ds *PostgresService) GetMerchantCampaigns(merchantID string) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := ds.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return campaigns, nil
}

func (ds *PostgresService) UpdateCampaign(campaign *model.Campaign) error {
	campaign.UpdatedAt = time.Now()
	if err := ds.db.Save(campaign).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) CountActiveCampaigns(merchantID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Campaign{}).
		Where("merchant_id = ? AND is_active = ?", merchantID, true).
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== GAME CATALOG METHODS ====================

func (ds *PostgresService) CreateGame(game *model.Game) (*model.Game, error) {
	if game.ID == "" {
		id, _ := uuid.NewV7()
		game.ID = id.String()
	}
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()

	if err := ds.db.Create(game).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return game, nil
}

func (ds *PostgresService) GetGame(id string) (*model.Game, error) {
	var game model.Game
	if err := ds.db.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &game, nil
}

func (ds *PostgresService) GetGameByCode(code string) (*model.Game, error) {
	var game model.Game
	if err := ds.db.Where("code = ?", code).First(&game).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &game, nil
}

func (ds *PostgresService) GetActiveGames() ([]model.Game, error) {
	var games []model.Game
	if err := ds.db.Where("is_active = ?", true).Order("name ASC").Find(&games).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return games, nil
}

// ==================== QR CODE METHODS ====================

func (ds *PostgresService) CreateQRCodes(codes []model.QRCode) error {
	if len(codes) == 0 {
		return nil
	}

	now := time.Now()
	for i := range codes {
		if codes[i].ID == "" {
			id, _ := uuid.NewV7()
			codes[i].ID = id.String()
		}
		codes[i].CreatedAt = now
		codes[i].UpdatedAt = now
	}

	if err := ds.db.CreateInBatches(codes, 100).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetQRCodeByUniqueID(uniqueID string) (*model.QRCode, error) {
	var code model.QRCode
	if err := ds.db.Where("unique_id = ?", uniqueID).First(&code).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &code, nil
}

// ConsumeQRCode increments the use counter, guarded so a capped code is never
// taken past its limit by concurrent scans.
func (ds *PostgresService) ConsumeQRCode(id string, maxUses int) (bool, error) {
	query := ds.db.Model(&model.QRCode{}).Where("id = ? AND is_active = ?", id, true)
	if maxUses > 0 {
		query = query.Where("use_count < ?", maxUses)
	}

	now := time.Now()
	result := query.Updates(map[string]interface{}{
		"use_count":    gorm.Expr("use_count + 1"),
		"last_used_at": &now,
		"updated_at":   now,
	})
	if result.Error != nil {
		return false, ds.HandleError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (ds *PostgresService) GetCampaignQRCodes(campaignID string) ([]model.QRCode, error) {
	var codes []model.QRCode
	if err := ds.db.Where("campaign_id = ?", campaignID).
		Order("created_at ASC").Find(&codes).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return codes, nil
}

func (ds *PostgresService) DeactivateQRCode(id, merchantID string) error {
	return ds.db.Model(&model.QRCode{}).
		Where("id = ? AND merchant_id = ?", id, merchantID).
		Update("is_active", false).Error
}

// ==================== SCAN EVENT METHODS ====================

func (ds *PostgresService) CreateScanEvent(event *model.ScanEvent) (*model.ScanEvent, error) {
	if event.ID == "" {
		id, _ := uuid.NewV7()
		event.ID = id.String()
	}
	event.CreatedAt = time.Now()

	if err := ds.db.Create(event).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return event, nil
}

func (ds *PostgresService) GetScanEvent(id string) (*model.ScanEvent, error) {
	var event model.ScanEvent
	if err := ds.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &event, nil
}

func (ds *PostgresService) AttachCustomerToScan(scanID, customerID string) error {
	return ds.db.Model(&model.ScanEvent{}).Where("id = ?", scanID).
		Update("customer_id", customerID).Error
}

func (ds *PostgresService) CountMerchantScans(merchantID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.ScanEvent{}).
		Where("merchant_id = ?", merchantID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CountMerchantScansSince(merchantID string, since time.Time) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.ScanEvent{}).
		Where("merchant_id = ? AND created_at >= ?", merchantID, since).
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== GAME COMPLETION METHODS ====================

func (ds *PostgresService) CreateGameCompletion(completion *model.GameCompletion) error {
	if completion.ID == "" {
		id, _ := uuid.NewV7()
		completion.ID = id.String()
	}
	completion.CreatedAt = time.Now()

	if err := ds.db.Create(completion).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetCustomerCompletions(customerID string) ([]model.GameCompletion, error) {
	var completions []model.GameCompletion
	if err := ds.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&completions).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return completions, nil
}

func (ds *PostgresService) SumMerchantPoints(merchantID string) (int64, error) {
	var total int64
	if err := ds.db.Model(&model.GameCompletion{}).
		Where("merchant_id = ?", merchantID).
		Select("COALESCE(SUM(points), 0)").Scan(&total).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return total, nil
}

func (ds *PostgresService) CountMerchantCustomers(merchantID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Customer{}).
		Where("merchant_id = ?", merchantID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== MEDIA ASSET METHODS ====================

func (ds *PostgresService) CreateMediaAsset(asset *model.MediaAsset) error {
	if asset.ID == "" {
		id, _ := uuid.NewV7()
		asset.ID = id.String()
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()

	if err := ds.db.Create(asset).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &asset, nil
}

func (ds *PostgresService) GetCampaignAssets(campaignID string) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	if err := ds.db.Where("campaign_id = ?", campaignID).Find(&assets).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return assets, nil
}

func (ds *PostgresService) DeleteMediaAsset(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.MediaAsset{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== RATE LIMIT METHODS ====================

func (s *PostgresService) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit

	err := s.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rateLimit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rateLimit, nil
}

func (s *PostgresService) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, _ := uuid.NewV7()
		rateLimit.ID = id.String()
	}

	now := time.Now()
	if rateLimit.CreatedAt.IsZero() {
		rateLimit.CreatedAt = now
	}
	rateLimit.UpdatedAt = now

	if err := s.db.Save(rateLimit).Error; err != nil {
		return err
	}
	return nil
}

func (s *PostgresService) UpdateRateLimit(rateLimit *model.RateLimit) error {
	err := s.db.Model(rateLimit).Where("id = ?", rateLimit.ID).Updates(map[string]interface{}{
		"request_count": rateLimit.RequestCount,
		"blocked_until": rateLimit.BlockedUntil,
		"updated_at":    rateLimit.UpdatedAt,
	}).Error

	return err
}

func (s *PostgresService) CleanupOldRateLimits() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	now := time.Now()

	err := s.db.Where("created_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&model.RateLimit{}).Error

	return err
}

package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns merchant accounts and the sessions behind both auth
// surfaces: the dashboard JWT and the session secret the RPC client signs
// with. Both are minted together at login and revoked together at logout.
type AuthService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	jwtSvc   *JWTService
	emailSvc *EmailService
	geoSvc   *GeolocationService
}

const AUTH_SVC = "auth_svc"

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	svc.geoSvc = svc.Service(GEOLOCATION_SVC).(*GeolocationService)
	return nil
}

// ==================== REGISTRATION ====================

func (svc *AuthService) Register(req dto.RegisterMerchantRequest) (*dto.RegisterMerchantResponse, error) {
	available, err := svc.sqlSvc.IsEmailAvailable(req.Email)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to check email availability")
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	code, err := svc.generateVerificationCode()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate verification code")
	}

	user, err := svc.sqlSvc.CreateUser(req, string(hashed), code)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create account")
	}

	go func() {
		if err := svc.emailSvc.SendVerificationEmail(user.Email, user.BusinessName, code); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to send verification email")
		}
	}()

	svc.audit(user.ID, "register", "", "", true, "Merchant account created")

	return &dto.RegisterMerchantResponse{
		UserID:               user.ID,
		MerchantID:           user.MerchantID,
		RequiresVerification: true,
		Message:              "Registration successful. Please check your email for verification.",
	}, nil
}

func (svc *AuthService) VerifyEmail(req dto.VerifyEmailRequest) error {
	user, err := svc.sqlSvc.GetUserByVerificationCode(req.Email, req.Code)
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid verification code")
	}

	if user.VerificationCodeExpiry == nil || time.Now().After(*user.VerificationCodeExpiry) {
		return shared.NewBadRequestError(nil, "Verification code has expired")
	}

	if err := svc.sqlSvc.VerifyUserEmail(user.ID); err != nil {
		return shared.NewInternalError(err, "Failed to verify email")
	}

	svc.audit(user.ID, "verify_email", "", "", true, "Email verified")
	return nil
}

func (svc *AuthService) ResendVerificationCode(email string) error {
	user, err := svc.sqlSvc.GetUserByEmail(email)
	if err != nil {
		// Same answer for unknown accounts, so the endpoint doesn't leak
		// which emails exist.
		return nil
	}
	if user.EmailVerified {
		return shared.NewBadRequestError(nil, "Email is already verified")
	}

	code, err := svc.generateVerificationCode()
	if err != nil {
		return shared.NewInternalError(err, "Failed to generate verification code")
	}
	if err := svc.sqlSvc.UpdateVerificationCode(user.ID, code); err != nil {
		return shared.NewInternalError(err, "Failed to update verification code")
	}

	go func() {
		if err := svc.emailSvc.SendVerificationEmail(user.Email, user.BusinessName, code); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to resend verification email")
		}
	}()

	return nil
}

func (svc *AuthService) generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ==================== LOGIN / LOGOUT ====================

func (svc *AuthService) Login(req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			svc.audit("", "login", ip, userAgent, false, "Unknown email")
			return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
		}
		return nil, shared.NewInternalError(err, "Failed to look up account")
	}

	if user.LockedUntil != nil && time.Now().Before(*user.LockedUntil) {
		svc.audit(user.ID, "login", ip, userAgent, false, "Account locked")
		return nil, shared.NewForbiddenError(nil, "Account temporarily locked. Try again later.")
	}

	if !user.IsActive {
		svc.audit(user.ID, "login", ip, userAgent, false, "Account deactivated")
		return nil, shared.NewForbiddenError(nil, "Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		if err := svc.sqlSvc.IncrementFailedAttempts(user.ID); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to record failed attempt")
		}
		if user.FailedAttempts+1 >= maxFailedAttempts {
			lockUntil := time.Now().Add(lockoutDuration)
			if err := svc.sqlSvc.LockAccount(user.ID, lockUntil); err != nil {
				log.WithError(err).WithField("user_id", user.ID).Error("Failed to lock account")
			}
		}
		svc.audit(user.ID, "login", ip, userAgent, false, "Wrong password")
		return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
	}

	if !user.EmailVerified {
		svc.audit(user.ID, "login", ip, userAgent, false, "Email not verified")
		return nil, shared.NewForbiddenError(nil, "Please verify your email before logging in")
	}

	if err := svc.sqlSvc.ResetFailedAttempts(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to reset failed attempts")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.MerchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	secret, err := svc.jwtSvc.GenerateSessionSecret()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue session secret")
	}

	now := time.Now()
	sessionID, err := svc.sqlSvc.CreateUserSession(&model.UserSession{
		UserID:        user.ID,
		SessionSecret: secret,
		IP:            ip,
		UserAgent:     userAgent,
		CreatedAt:     now,
		LastUsed:      now,
		IsActive:      true,
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create session")
	}

	if err := svc.sqlSvc.UpdateLastLogin(user.ID, ip); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to update last login")
	}

	go svc.notifyLogin(user, ip, userAgent, now)
	svc.audit(user.ID, "login", ip, userAgent, true, "Login successful")

	return &dto.LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		SessionID:   sessionID,
		Session: dto.SessionCredentials{
			UserID:        user.ID,
			SessionSecret: secret,
		},
		User: svc.userInfo(user),
	}, nil
}

func (svc *AuthService) notifyLogin(user *model.User, ip, userAgent string, at time.Time) {
	location, err := svc.geoSvc.GetLocationByIP(ip)
	if err != nil {
		location = "Unknown"
	}

	if err := svc.emailSvc.SendLoginNotificationEmail(
		user.Email, user.BusinessName, at.Format(time.RFC1123), ip, userAgent, location,
	); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to send login notification")
	}
}

func (svc *AuthService) Logout(userID, sessionID string) error {
	if sessionID != "" {
		if err := svc.sqlSvc.DeactivateSession(sessionID, userID); err != nil {
			return shared.NewInternalError(err, "Failed to revoke session")
		}
	} else {
		if err := svc.sqlSvc.DeactivateAllUserSessions(userID, ""); err != nil {
			return shared.NewInternalError(err, "Failed to revoke sessions")
		}
	}

	svc.audit(userID, "logout", "", "", true, "Session revoked")
	return nil
}

// ==================== SESSION VERIFICATION ====================

// VerifySession answers the client's auth re-check. A missing or dead session
// is an explicit unauthorized answer; infrastructure trouble surfaces as an
// internal error so the client knows not to discard its credentials.
func (svc *AuthService) VerifySession(userID string) (*dto.VerifySessionResponse, error) {
	user, err := svc.sqlSvc.GetUserByID(userID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == fiber.StatusNotFound {
			return nil, shared.NewUnauthorizedError(nil, "Session is no longer valid")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Session is no longer valid")
		}
		return nil, shared.NewInternalError(err, "Failed to verify session")
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account is deactivated")
	}

	session, err := svc.sqlSvc.GetActiveSessionByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Session is no longer valid")
		}
		return nil, shared.NewInternalError(err, "Failed to verify session")
	}

	if err := svc.sqlSvc.UpdateSessionLastUsed(session.ID); err != nil {
		log.WithError(err).WithField("session_id", session.ID).Warn("Failed to touch session")
	}

	return &dto.VerifySessionResponse{
		Valid: true,
		User:  svc.userInfo(user),
	}, nil
}

// sessionLookupError keeps the 401/500 split on every session read: only a
// missing row means the session is gone. Infrastructure trouble must not
// answer 401, because clients discard their credentials on it.
func sessionLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewUnauthorizedError(nil, "No active session")
	}
	return shared.NewInternalError(err, "Failed to load session")
}

// SessionSecretFor hands the RPC gateway the secret it needs to recompute an
// envelope hash.
func (svc *AuthService) SessionSecretFor(userID string) (string, error) {
	session, err := svc.sqlSvc.GetActiveSessionByUser(userID)
	if err != nil {
		return "", sessionLookupError(err)
	}
	return session.SessionSecret, nil
}

func (svc *AuthService) GetAuditLogs(userID string, page, limit int) (*dto.AuditLogResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := svc.sqlSvc.GetUserAuditLogs(userID, page, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load audit logs")
	}

	out := make([]dto.AuthAuditLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuthAuditLog{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			IP:        l.IP,
			Location:  l.Location,
			UserAgent: l.UserAgent,
			Timestamp: l.Timestamp,
			Success:   l.Success,
			Details:   l.Details,
		})
	}

	return &dto.AuditLogResponse{
		Logs:  out,
		Total: int(total),
		Page:  page,
		Limit: limit,
	}, nil
}

func (svc *AuthService) userInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:            user.ID,
		MerchantID:    user.MerchantID,
		Email:         user.Email,
		BusinessName:  user.BusinessName,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		LastLoginAt:   user.LastLoginAt,
	}
}

func (svc *AuthService) audit(userID, action, ip, userAgent string, success bool, details string) {
	location := ""
	if ip != "" {
		if loc, err := svc.geoSvc.GetLocationByIP(ip); err == nil {
			location = loc
		}
	}

	entry := dto.AuthAuditLog{
		UserID:    userID,
		Action:    action,
		IP:        ip,
		Location:  location,
		UserAgent: userAgent,
		Timestamp: time.Now(),
		Success:   success,
		Details:   details,
	}

	if err := svc.sqlSvc.CreateAuthAuditLog(entry); err != nil {
		log.WithError(err).WithField("action", action).Error("Failed to write audit log")
	}
}

// ==================== MIDDLEWARE ====================

// RequiredAuth guards dashboard routes. It validates the bearer token and
// stores the caller's user and merchant ids on the request context.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		user, err := svc.sqlSvc.GetUserByID(userID)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}
		if !user.IsActive {
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.MerchantID, user.MerchantID)
		return c.Next()
	}
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/shared"
)

// PublicHandler serves the anonymous surface: everything a player's phone
// touches between scanning a printed code and landing in a game. Responses
// use the legacy status envelope, with business failures folded into an
// ERROR envelope on a 200 so client-side handling stays uniform.
type PublicHandler struct {
	qrSvc       QRServiceInterface
	flowSvc     ScanFlowServiceInterface
	customerSvc CustomerServiceInterface
	gameSvc     GameServiceInterface
}

func NewPublicHandler(qrSvc QRServiceInterface, flowSvc ScanFlowServiceInterface, customerSvc CustomerServiceInterface, gameSvc GameServiceInterface) *PublicHandler {
	return &PublicHandler{
		qrSvc:       qrSvc,
		flowSvc:     flowSvc,
		customerSvc: customerSvc,
		gameSvc:     gameSvc,
	}
}

func respondRPC(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode < 500 {
			return c.JSON(dto.RPCResponse{Status: dto.RPCStatusError, Message: appErr.Message})
		}
		return err
	}
	return c.JSON(dto.RPCResponse{Status: dto.RPCStatusSuccess, Data: data})
}

// ==================== QR VALIDATION ====================

// @Summary Validate a scanned QR code
// @Description Consume one use of a printed code and return its game context
// @Tags public
// @Accept json
// @Produce json
// @Param uniqueId path string true "QR unique id"
// @Success 200 {object} dto.RPCResponse{data=dto.QRValidationResult}
// @Router /api/v1/public/qr/{uniqueId}/validate [post]
func (h *PublicHandler) ValidateQR(c *fiber.Ctx) error {
	uniqueID := c.Params("uniqueId")
	if uniqueID == "" {
		return shared.ResponseBadRequest(c, "QR code id is required")
	}

	result, err := h.qrSvc.ValidateCode(uniqueID, c.IP(), c.Get("User-Agent"))
	return respondRPC(c, result, err)
}

// ==================== CUSTOMERS ====================

// @Summary Find a customer by phone
// @Description Look up a player within a merchant, applying identity update hints
// @Tags public
// @Accept json
// @Produce json
// @Param findRequest body dto.FindCustomerRequest true "Merchant and phone"
// @Success 200 {object} dto.RPCResponse{data=dto.CustomerResponse}
// @Router /api/v1/public/customers/find [post]
func (h *PublicHandler) FindCustomer(c *fiber.Ctx) error {
	var req dto.FindCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	customer, err := h.customerSvc.FindByPhone(req)
	return respondRPC(c, customer, err)
}

// @Summary Upsert a customer
// @Description Find or create a player record for a merchant
// @Tags public
// @Accept json
// @Produce json
// @Param upsertRequest body dto.UpsertCustomerRequest true "Player contact details"
// @Success 200 {object} dto.RPCResponse{data=dto.CustomerResponse}
// @Router /api/v1/public/customers [post]
func (h *PublicHandler) UpsertCustomer(c *fiber.Ctx) error {
	var req dto.UpsertCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	customer, err := h.customerSvc.Upsert(req)
	return respondRPC(c, customer, err)
}

// @Summary Player profile
// @Description Durable profile for a registered player
// @Tags public
// @Produce json
// @Param customerId path string true "Customer id"
// @Success 200 {object} dto.RPCResponse{data=dto.PlayerData}
// @Router /api/v1/public/players/{customerId} [get]
func (h *PublicHandler) PlayerProfile(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	if customerID == "" {
		return shared.ResponseBadRequest(c, "Customer id is required")
	}

	profile, err := h.customerSvc.PlayerProfile(customerID)
	return respondRPC(c, profile, err)
}

// ==================== SCAN FLOW ====================

// @Summary Start a scan session
// @Description Validate the code and open a short-lived scan session
// @Tags public
// @Accept json
// @Produce json
// @Param uniqueId path string true "QR unique id"
// @Success 200 {object} dto.RPCResponse{data=dto.ScanStateResponse}
// @Router /api/v1/public/scan/{uniqueId} [post]
func (h *PublicHandler) StartScan(c *fiber.Ctx) error {
	uniqueID := c.Params("uniqueId")
	if uniqueID == "" {
		return shared.ResponseBadRequest(c, "QR code id is required")
	}

	state, err := h.flowSvc.StartScan(uniqueID, c.IP(), c.Get("User-Agent"))
	return respondRPC(c, state, err)
}

// @Summary Scan session state
// @Tags public
// @Produce json
// @Param scanId path string true "Scan session id"
// @Success 200 {object} dto.RPCResponse{data=dto.ScanStateResponse}
// @Router /api/v1/public/scan/{scanId} [get]
func (h *PublicHandler) GetScan(c *fiber.Ctx) error {
	scanID := c.Params("scanId")
	if scanID == "" {
		return shared.ResponseBadRequest(c, "Scan id is required")
	}

	state, err := h.flowSvc.GetScan(scanID)
	return respondRPC(c, state, err)
}

// @Summary Submit player registration
// @Description Register the player against a ready scan session and get the game redirect
// @Tags public
// @Accept json
// @Produce json
// @Param scanId path string true "Scan session id"
// @Param registration body dto.RegistrationRequest true "Player contact form"
// @Success 200 {object} dto.RPCResponse{data=dto.RedirectResponse}
// @Router /api/v1/public/scan/{scanId}/register [post]
func (h *PublicHandler) SubmitRegistration(c *fiber.Ctx) error {
	scanID := c.Params("scanId")
	if scanID == "" {
		return shared.ResponseBadRequest(c, "Scan id is required")
	}

	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	redirect, err := h.flowSvc.SubmitRegistration(scanID, req)
	return respondRPC(c, redirect, err)
}

// ==================== GAMES ====================

// @Summary List available games
// @Tags public
// @Produce json
// @Success 200 {object} dto.RPCResponse{data=[]dto.GameInfo}
// @Router /api/v1/public/games [get]
func (h *PublicHandler) ListGames(c *fiber.Ctx) error {
	games, err := h.gameSvc.ListGames()
	return respondRPC(c, games, err)
}

// @Summary Play a game server-side
// @Description Run one round and credit the outcome to the player
// @Tags public
// @Accept json
// @Produce json
// @Param playRequest body dto.PlayGameRequest true "Game round"
// @Success 200 {object} dto.RPCResponse{data=dto.PlayGameResponse}
// @Router /api/v1/public/games/play [post]
func (h *PublicHandler) PlayGame(c *fiber.Ctx) error {
	var req dto.PlayGameRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.gameSvc.Play(req)
	return respondRPC(c, result, err)
}

// @Summary Track a finished playthrough
// @Description Credit a client-reported score, clamped to the game's maximum
// @Tags public
// @Accept json
// @Produce json
// @Param trackRequest body dto.TrackGameRequest true "Playthrough result"
// @Success 200 {object} dto.RPCResponse{data=dto.TrackGameResponse}
// @Router /api/v1/public/games/track [post]
func (h *PublicHandler) TrackGame(c *fiber.Ctx) error {
	var req dto.TrackGameRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.gameSvc.Track(req)
	return respondRPC(c, result, err)
}

// @Summary Merchant leaderboard
// @Tags public
// @Produce json
// @Param merchantId path string true "Merchant id"
// @Param limit query int false "Entry count"
// @Success 200 {object} dto.RPCResponse{data=dto.LeaderboardResponse}
// @Router /api/v1/public/leaderboard/{merchantId} [get]
func (h *PublicHandler) Leaderboard(c *fiber.Ctx) error {
	merchantID := c.Params("merchantId")
	if merchantID == "" {
		return shared.ResponseBadRequest(c, "Merchant id is required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	board, err := h.customerSvc.Leaderboard(merchantID, limit)
	return respondRPC(c, board, err)
}

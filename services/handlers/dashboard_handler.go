package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/shared"
)

// DashboardHandler is the authenticated merchant surface: campaigns, QR
// batches, customers and stats. Every route sits behind RequiredAuth, so the
// merchant id always comes from locals, never from the payload.
type DashboardHandler struct {
	campaignSvc CampaignServiceInterface
	qrSvc       QRServiceInterface
	customerSvc CustomerServiceInterface
	gameSvc     GameServiceInterface
}

func NewDashboardHandler(campaignSvc CampaignServiceInterface, qrSvc QRServiceInterface, customerSvc CustomerServiceInterface, gameSvc GameServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		campaignSvc: campaignSvc,
		qrSvc:       qrSvc,
		customerSvc: customerSvc,
		gameSvc:     gameSvc,
	}
}

func merchantID(c *fiber.Ctx) string {
	if id, ok := c.Locals(shared.MerchantID).(string); ok {
		return id
	}
	return ""
}

// ==================== CAMPAIGNS ====================

// @Summary Create a campaign
// @Tags dashboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param campaignRequest body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} shared.Response{data=dto.CampaignResponse}
// @Router /api/v1/campaigns [post]
func (h *DashboardHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.campaignSvc.Create(merchantID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Campaign created", resp)
}

// @Summary List campaigns
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.CampaignResponse}
// @Router /api/v1/campaigns [get]
func (h *DashboardHandler) ListCampaigns(c *fiber.Ctx) error {
	resp, err := h.campaignSvc.List(merchantID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Campaigns", resp)
}

// @Summary Campaign details
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param campaignId path string true "Campaign id"
// @Success 200 {object} shared.Response{data=dto.CampaignResponse}
// @Router /api/v1/campaigns/{campaignId} [get]
func (h *DashboardHandler) GetCampaign(c *fiber.Ctx) error {
	resp, err := h.campaignSvc.Get(merchantID(c), c.Params("campaignId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Campaign", resp)
}

// @Summary Activate or deactivate a campaign
// @Tags dashboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param campaignId path string true "Campaign id"
// @Param activeRequest body object true "Active flag"
// @Success 200 {object} shared.Response{data=dto.CampaignResponse}
// @Router /api/v1/campaigns/{campaignId}/active [put]
func (h *DashboardHandler) SetCampaignActive(c *fiber.Ctx) error {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	resp, err := h.campaignSvc.SetActive(merchantID(c), c.Params("campaignId"), req.Active)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Campaign updated", resp)
}

// @Summary Upload campaign artwork
// @Tags dashboard
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param campaignId path string true "Campaign id"
// @Param file formData file true "Artwork image"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/campaigns/{campaignId}/artwork [post]
func (h *DashboardHandler) UploadArtwork(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.ResponseBadRequest(c, "Artwork file is required")
	}

	resp, err := h.campaignSvc.UploadArtwork(merchantID(c), c.Params("campaignId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Artwork uploaded", resp)
}

// @Summary Delete a media asset
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param assetId path string true "Asset id"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/assets/{assetId} [delete]
func (h *DashboardHandler) DeleteAsset(c *fiber.Ctx) error {
	if err := h.campaignSvc.DeleteAsset(merchantID(c), c.Params("assetId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Asset deleted", nil)
}

// ==================== QR CODES ====================

// @Summary Create a QR batch
// @Description Mint printable unique codes for a campaign
// @Tags dashboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param batchRequest body dto.CreateQRBatchRequest true "Batch details"
// @Success 201 {object} shared.Response{data=dto.QRBatchResponse}
// @Router /api/v1/qr/batches [post]
func (h *DashboardHandler) CreateQRBatch(c *fiber.Ctx) error {
	var req dto.CreateQRBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.qrSvc.CreateBatch(merchantID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "QR batch created", resp)
}

// @Summary List campaign QR codes
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param campaignId path string true "Campaign id"
// @Success 200 {object} shared.Response{data=[]model.QRCode}
// @Router /api/v1/campaigns/{campaignId}/qr [get]
func (h *DashboardHandler) ListCampaignQRCodes(c *fiber.Ctx) error {
	codes, err := h.qrSvc.ListCampaignCodes(merchantID(c), c.Params("campaignId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "QR codes", codes)
}

// @Summary Deactivate a QR code
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param codeId path string true "QR code id"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/qr/{codeId} [delete]
func (h *DashboardHandler) DeactivateQRCode(c *fiber.Ctx) error {
	if err := h.qrSvc.Deactivate(merchantID(c), c.Params("codeId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "QR code deactivated", nil)
}

// ==================== CUSTOMERS AND STATS ====================

// @Summary List customers
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.CustomerListResponse}
// @Router /api/v1/customers [get]
func (h *DashboardHandler) ListCustomers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.customerSvc.List(merchantID(c), page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Customers", resp)
}

// @Summary Merchant statistics
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.MerchantStatsResponse}
// @Router /api/v1/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.gameSvc.MerchantStats(merchantID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Merchant statistics", resp)
}

// @Summary Merchant leaderboard
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Entry count"
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	resp, err := h.customerSvc.Leaderboard(merchantID(c), limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Leaderboard", resp)
}

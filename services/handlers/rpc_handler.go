package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
)

type RPCHandler struct {
	rpcSvc RPCServiceInterface
}

func NewRPCHandler(rpcSvc RPCServiceInterface) *RPCHandler {
	return &RPCHandler{rpcSvc: rpcSvc}
}

// @Summary Signed RPC gateway
// @Description Dispatch a signed module.method envelope for an authenticated dashboard
// @Tags rpc
// @Accept json
// @Produce json
// @Param envelope body dto.RPCEnvelope true "Signed request envelope"
// @Success 200 {object} dto.RPCResponse
// @Router /v1/request/ [post]
func (h *RPCHandler) Handle(c *fiber.Ctx) error {
	var envelope dto.RPCEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		return err
	}

	resp, err := h.rpcSvc.Handle(envelope)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

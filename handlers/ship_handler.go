package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"port-registry/helper"
	"port-registry/middleware"
	"port-registry/models"
	"port-registry/services"

	"github.com/gin-gonic/gin"
)

const shipListURL = "/ships"

type ShipHandler struct {
	shipService services.ShipService
	Helper      *helper.HTTPHelper
}

func NewShipHandler(shipService services.ShipService) *ShipHandler {
	return &ShipHandler{
		shipService: shipService,
		Helper:      helper.NewHTTPHelper(),
	}
}

// ListShips returns every registered ship, most recent registration
// first. Any authenticated identity may list.
func (h *ShipHandler) ListShips(c *gin.Context) {
	ships, err := h.shipService.ListShips()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", ships)
}

func (h *ShipHandler) GetShip(c *gin.Context) {
	id, ok := h.shipID(c)
	if !ok {
		return
	}

	ship, err := h.shipService.GetShip(id)
	if err != nil {
		h.sendShipError(c, err, nil)
		return
	}

	h.Helper.SendSuccess(c, "Success", ship)
}

// CreateShip registers a new ship, stamping the current identity and
// time as its provenance. Operator-or-admin only (gated upstream).
func (h *ShipHandler) CreateShip(c *gin.Context) {
	var req models.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateRequest(c, &req) {
		return
	}

	registrar, _ := middleware.CurrentUser(c)

	ship, err := h.shipService.CreateShip(req, registrar)
	if err != nil {
		h.sendShipError(c, err, req)
		return
	}

	h.Helper.SendRedirect(c, shipListURL, helper.FlashSuccess,
		fmt.Sprintf("Ship %q registered successfully", ship.Name),
		gin.H{"ship": ship})
}

// UpdateShip applies the editable fields; registration provenance is
// untouched. Operator-or-admin only (gated upstream).
func (h *ShipHandler) UpdateShip(c *gin.Context) {
	id, ok := h.shipID(c)
	if !ok {
		return
	}

	var req models.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateRequest(c, &req) {
		return
	}

	ship, err := h.shipService.UpdateShip(id, req)
	if err != nil {
		h.sendShipError(c, err, req)
		return
	}

	h.Helper.SendRedirect(c, shipListURL, helper.FlashSuccess,
		fmt.Sprintf("Ship %q updated", ship.Name),
		gin.H{"ship": ship})
}

// ConfirmDeleteShip is the first step of the two-step delete: it shows
// the admin what would be removed without changing anything.
func (h *ShipHandler) ConfirmDeleteShip(c *gin.Context) {
	id, ok := h.shipID(c)
	if !ok {
		return
	}

	ship, err := h.shipService.GetShip(id)
	if err != nil {
		h.sendShipError(c, err, nil)
		return
	}

	h.Helper.SendSuccess(c, "Confirm deletion", gin.H{
		"ship":             ship,
		"confirm_required": true,
	})
}

// DeleteShip executes the deletion, admin only, and only with an
// explicit confirmation in the body. Irreversible.
func (h *ShipHandler) DeleteShip(c *gin.Context) {
	id, ok := h.shipID(c)
	if !ok {
		return
	}

	var req models.DeleteShipRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !req.Confirm {
		h.Helper.SendFieldValidationError(c, map[string][]string{
			"confirm": {"deletion must be confirmed"},
		}, nil)
		return
	}

	ship, err := h.shipService.DeleteShip(id)
	if err != nil {
		h.sendShipError(c, err, nil)
		return
	}

	h.Helper.SendRedirect(c, shipListURL, helper.FlashWarning,
		fmt.Sprintf("Ship %q removed from the registry", ship.Name), nil)
}

func (h *ShipHandler) shipID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendNotFoundError(c, "Ship not found", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func (h *ShipHandler) sendShipError(c *gin.Context, err error, submitted interface{}) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.Helper.SendNotFoundError(c, "Ship not found", h.Helper.EmptyJsonMap())
	case errors.As(err, &validationErr):
		h.Helper.SendFieldValidationError(c, validationErr.Fields, submitted)
	default:
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
	}
}

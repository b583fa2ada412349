package handlers

import (
	"port-registry/helper"
	"port-registry/middleware"
	"port-registry/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	reportService services.ReportService
	Helper        *helper.HTTPHelper
}

func NewDashboardHandler(reportService services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		Helper:        helper.NewHTTPHelper(),
	}
}

// Home is the public landing page payload: just the fleet total.
func (h *DashboardHandler) Home(c *gin.Context) {
	stats, err := h.reportService.HomeStats()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}

// Dashboard aggregates the fleet for any authenticated identity;
// operators and admins additionally see their own registration count.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		h.Helper.SendUnauthenticated(c, "User identity not found")
		return
	}

	stats, err := h.reportService.DashboardStats(current)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}

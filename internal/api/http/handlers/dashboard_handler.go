package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bz-technologies/helpdesk/internal/api/dto"
	"github.com/bz-technologies/helpdesk/internal/service"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serves ticket statistics.
type DashboardHandler struct {
	dashboard *service.DashboardService
	now       func() time.Time
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// Stats GET /api/dashboard.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(h.dashboard.Stats())})
}

// Report GET /api/dashboard/report.
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	data, filename, err := h.dashboard.ExportReport(h.now())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

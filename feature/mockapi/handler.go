package mockapi

import (
	"errors"

	"tag-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the mock device-management API.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the device-management routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/hosts", h.HandleListHosts)
	app.Post("/inventory/hardware/reports", h.HandleCreateReport)
	app.Get("/inventory/hardware/reports/:token", h.HandleReportPage)
}

type reportRequest struct {
	// HostIDs is a pointer so that null can be told apart from [].
	HostIDs *[]int64 `json:"hostIds"`
	Fields  []string `json:"fields"`
}

type reportState struct {
	Token *string `json:"token"`
}

type reportPageResponse struct {
	Hosts  any         `json:"hosts"`
	Report reportState `json:"report"`
}

// HandleListHosts returns the host directory.
func (h *Handler) HandleListHosts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"hosts": h.service.Hosts()})
}

// HandleCreateReport generates a report and returns its first token.
func (h *Handler) HandleCreateReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		l.Warn("Malformed report request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed report request"})
	}
	if req.HostIDs == nil || len(req.Fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hostIds and fields are required"})
	}

	token, err := h.service.CreateReport(*req.HostIDs, req.Fields)
	if err != nil {
		l.Warn("Report request rejected", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Report requested", zap.Int("hosts", len(*req.HostIDs)), zap.Strings("fields", req.Fields))
	return c.JSON(fiber.Map{"token": token})
}

// HandleReportPage serves one report page and consumes its token.
func (h *Handler) HandleReportPage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	page, err := h.service.Page(c.Params("token"))
	if errors.Is(err, ErrUnknownToken) {
		l.Warn("Unknown report token")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := reportPageResponse{Hosts: page.Rows}
	if page.Next != "" {
		next := page.Next
		resp.Report.Token = &next
	}
	return c.JSON(resp)
}

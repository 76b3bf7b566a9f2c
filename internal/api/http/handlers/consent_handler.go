package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bz-technologies/helpdesk/internal/api/dto"
	"github.com/bz-technologies/helpdesk/internal/consent"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

// ClientCookie identifies a browser for the consent flag.
const ClientCookie = "helpdesk_client"

// ConsentHandler reads and records the privacy notice acceptance.
type ConsentHandler struct {
	store consent.Store
}

// NewConsentHandler constructs handler.
func NewConsentHandler(store consent.Store) *ConsentHandler {
	return &ConsentHandler{store: store}
}

// Get GET /api/consent.
func (h *ConsentHandler) Get(c *fiber.Ctx) error {
	accepted, err := h.Accepted(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ConsentResponse{Accepted: accepted}})
}

// Accept POST /api/consent.
func (h *ConsentHandler) Accept(c *fiber.Ctx) error {
	if err := h.store.Accept(c.UserContext(), ClientID(c)); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.ConsentResponse{Accepted: true}})
}

// Accepted reports whether the calling client accepted the notice.
func (h *ConsentHandler) Accepted(c *fiber.Ctx) (bool, error) {
	accepted, err := h.store.Accepted(c.UserContext(), ClientID(c))
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	return accepted, nil
}

// ClientID returns the caller's client id, issuing the cookie on first use.
func ClientID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ClientCookie).(string); ok && id != "" {
		return id
	}
	id := c.Cookies(ClientCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     ClientCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(ClientCookie, id)
	return id
}

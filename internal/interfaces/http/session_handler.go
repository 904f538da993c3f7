package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/application/session"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/pkg/jwt"
)

// TokenConfig parámetros para firmar el token de sesión.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// SessionHandler abre y cierra la sesión. No hay contraseñas: basta con que la cuenta exista y esté activa.
type SessionHandler struct {
	store    *admin.Store
	sessions *session.Manager
	token    TokenConfig
	log      zerolog.Logger
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(s *admin.Store, sessions *session.Manager, token TokenConfig, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{store: s, sessions: sessions, token: token, log: log}
}

// SignIn POST /api/session
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "userId es requerido"})
	}
	account, ok := h.store.Account(in.UserID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cuenta desconocida"})
	}
	if err := h.sessions.SignIn(account); err != nil {
		return writeError(c, err)
	}
	if updated, err := h.store.RecordLogin(account.ID); err == nil {
		account = updated
		h.sessions.Refresh(updated)
	} else {
		h.log.Warn().Err(err).Str("user", account.ID).Msg("no se pudo registrar el último acceso")
	}

	token, err := jwt.Generate(h.token.Secret, account.ID, string(account.Role), h.token.Issuer, h.token.ExpMinutes)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.SignInResponse{Token: token, User: account}
	if account.Role == entity.RoleAdmin {
		out.Capabilities = h.store.Guard().Capabilities(account)
	}
	return c.JSON(out)
}

// Current GET /api/session
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	st := h.sessions.State()
	return c.JSON(dto.SessionResponse{User: st.User, IsAuthenticated: st.IsAuthenticated})
}

// SignOut DELETE /api/session
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	h.sessions.SignOut()
	return c.SendStatus(fiber.StatusNoContent)
}

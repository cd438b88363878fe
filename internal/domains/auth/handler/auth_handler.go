package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/auth"
	"biblioteca-console/internal/session"
	"biblioteca-console/internal/shared/middleware"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/pkg/logger"
)

// AuthHandler owns login, registration, logout and the current-identity
// probe. Login exchanges credentials for a backend token and turns it into
// a server-side session referenced by an http-only cookie; the token itself
// never reaches the browser.
type AuthHandler struct {
	service      auth.Service
	sessions     *session.Store
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(service auth.Service, sessions *session.Store, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		sessions:     sessions,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	identity, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), *identity)
	if err != nil {
		logger.Error("create session", err)
		response.InternalServerError(c, "No se pudo iniciar la sesión")
		return
	}

	maxAge := int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds())
	c.SetCookie(h.cookieName, sess.ID, maxAge, "/", "", h.cookieSecure, true)

	response.Success(c, http.StatusOK, gin.H{"usuario": sess.User})
}

// Register handles POST /auth/registro. Registration always produces a
// member-role identity; the caller logs in afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	req.Sanitize()
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"mensaje": "Registro exitoso. Ya puede iniciar sesión.",
	})
}

// Logout handles POST /auth/logout: destroys the session and clears the
// cookie. Logging out while already anonymous is a no-op success.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.SessionFrom(c); ok {
		if err := h.sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
			logger.Warn("destroy session", err)
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{"mensaje": "Sesión cerrada"})
}

// Me handles GET /auth/me: the identity behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		response.Unauthorized(c, "sesión requerida")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"usuario": sess.User})
}

package handlers

import (
	"net/http"

	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Number   string `json:"number"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 envelope on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		abortWithEnvelope(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Registration payload"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /users/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Username: input.Username,
		Name:     input.Name,
		Number:   input.Number,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "user created successfully")
}

// @Summary      Log in
// @Description  Issues access and refresh tokens as secure http-only cookies.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, pair, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "email", input.Email)
		}
		h.respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, gin.H{"user": user, "tokens": pair}, "user logged in successfully")
}

// @Summary      Rotate the token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/refresh-token [post]
func (h *Handler) refreshToken(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if token == "" {
		var input refreshRequest
		// body is optional when the cookie is present, so ignore bind errors
		_ = c.ShouldBindJSON(&input)
		token = input.RefreshToken
	}

	pair, err := h.services.Refresh(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, pair, "tokens refreshed")
}

// @Summary      Log out
// @Description  Clears the stored refresh token and both cookies. Idempotent.
// @Tags         users
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.services.Logout(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	h.clearAuthCookies(c)
	respond(c, http.StatusOK, nil, "user logged out")
}

func (h *Handler) setAuthCookies(c *gin.Context, pair service.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, pair.AccessToken,
		int(h.cfg.AccessCookieTTL.Seconds()), "/", "", h.cfg.SecureCookies, true)
	c.SetCookie(refreshCookieName, pair.RefreshToken,
		int(h.cfg.RefreshCookieTTL.Seconds()), "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Number string `json:"number"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *Handler) currentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.services.Current(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "current user fetched successfully")
}

// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  updateAccountRequest  true  "Profile fields"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *Handler) updateAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input updateAccountRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.UpdateAccount(c.Request.Context(), userID, input.Name, input.Email, input.Number)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "account details updated")
}

// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  changePasswordRequest  true  "Old and new password"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /users/change-password [post]
// @Security     BearerAuth
func (h *Handler) changePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input changePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.ChangePassword(c.Request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "password updated successfully")
}

package handlers

import (
	"net/http"

	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Age      int    `json:"age" binding:"gte=0"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "New account"
// @Success      201   {object}  map[string]interface{}  "user, token"
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Age:      input.Age,
	})
	if err != nil {
		h.respondError(c, err, "sign_up_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "user, token"
// @Failure      400   {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, err, "login_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// @Summary      Log out current session
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.Logout(c.Request.Context(), user.ID, currentToken(c)); err != nil {
		h.respondError(c, err, "logout_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// @Summary      Log out all sessions
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/logoutall [post]
// @Security     BearerAuth
func (h *Handler) logoutAll(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.LogoutAll(c.Request.Context(), user.ID); err != nil {
		h.respondError(c, err, "logout_all_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out everywhere"})
}

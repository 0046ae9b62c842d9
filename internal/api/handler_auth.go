package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles the POST /api/login request. Users authenticate with
// their email address as username; a successful login returns a bearer
// token identifying them on subsequent calls.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, bindingErrors(err))
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, http.StatusUnauthorized, "Invalid credentials.")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	if err := h.users.ComparePassword(user, req.Password); err != nil {
		abortError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

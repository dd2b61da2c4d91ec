package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-api/internal/auth"
	"parking-api/internal/model"
)

// Login exchanges a username and password for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		abortWithError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	token, exp, err := h.issuer.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("Error issuing token for %s: %v", req.Username, err)
		abortWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: token, ExpiresAt: exp})
}

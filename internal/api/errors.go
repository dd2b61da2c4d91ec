package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"parking-api/internal/model"
	"parking-api/internal/store"
)

var errSpacesExceedTotal = errors.New("availableSpaces must not exceed totalSpaces")

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: msg})
}

// abortWithStoreError maps store errors onto HTTP statuses.
func abortWithStoreError(c *gin.Context, what string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, errSpacesExceedTotal):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "internal server error")
	}
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

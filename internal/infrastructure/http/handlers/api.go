// Package handlers provides the Gin handlers for the REST API
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

var validate = validator.New()

// APIResponse is the success envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError writes the error envelope, logging server-side failures.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "request failed")
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(appErr),
		)
	}
	c.JSON(appErr.StatusCode(), errors.ToErrorResponse(appErr, c.GetHeader("X-Request-ID")))
}

// bindAndValidate decodes the JSON body and runs struct validation.
func bindAndValidate(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return errors.NewValidationError("request body is not valid JSON")
	}
	if err := validate.Struct(target); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}

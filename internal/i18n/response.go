package i18n

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends an appropriate HTTP error response for the given error
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	errorMsg := TranslateError(c, err)

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		statusCode = int(errWithCode.GetCode())
	}

	c.JSON(statusCode, gin.H{"error": errorMsg})
}

// AbortWithError responds with the error and stops the handler chain.
// Intended for middleware.
func AbortWithError(c *gin.Context, err error) {
	RespondWithError(c, err)
	c.Abort()
}

// RespondWithFieldErrors sends a 400 with a per-field error list
func RespondWithFieldErrors(c *gin.Context, fields map[string]string) {
	translated := make(map[string]string, len(fields))
	for field, msgID := range fields {
		translated[field] = TranslateMessage(c, msgID, nil)
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  TranslateMessage(c, "ErrorBadRequest", nil),
		"fields": translated,
	})
}

// RespondWithSuccess sends a success HTTP response with an internationalized message
func RespondWithSuccess(c *gin.Context, statusCode int, msgID string, payload interface{}) {
	response := gin.H{
		"message": TranslateMessage(c, msgID, nil),
	}

	if payload != nil {
		switch p := payload.(type) {
		case map[string]any:
			for k, v := range p {
				response[k] = v
			}
		case gin.H:
			for k, v := range p {
				response[k] = v
			}
		default:
			response["data"] = payload
		}
	}

	c.JSON(statusCode, response)
}

// RespondOK sends a success HTTP response with status code 200
func RespondOK(c *gin.Context, msgID string, payload interface{}) {
	RespondWithSuccess(c, http.StatusOK, msgID, payload)
}

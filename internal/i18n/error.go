package i18n

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents an HTTP status code
type ErrorCode int

const (
	ErrorBadRequest     ErrorCode = http.StatusBadRequest
	ErrorUnauthorized   ErrorCode = http.StatusUnauthorized
	ErrorForbidden      ErrorCode = http.StatusForbidden
	ErrorNotFound       ErrorCode = http.StatusNotFound
	ErrorConflict       ErrorCode = http.StatusConflict
	ErrorInternalServer ErrorCode = http.StatusInternalServerError
)

// I18nError represents an internationalized error
type I18nError struct {
	// MessageID is the key used for translation lookup
	MessageID string
	// DefaultMessage is used when translation is not available
	DefaultMessage string
	// Data holds template parameters for the message
	Data map[string]interface{}
}

// New creates a new I18nError with the given message ID
func New(messageID string) *I18nError {
	return &I18nError{
		MessageID:      messageID,
		DefaultMessage: messageID,
		Data:           make(map[string]interface{}),
	}
}

// WithParam returns a copy of the error with one template parameter
// added. Copying keeps the package-level error values immutable.
func (e *I18nError) WithParam(key string, value interface{}) *I18nError {
	data := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		data[k] = v
	}
	data[key] = value
	return &I18nError{
		MessageID:      e.MessageID,
		DefaultMessage: e.DefaultMessage,
		Data:           data,
	}
}

// Error implements the error interface
func (e *I18nError) Error() string {
	if t := GetTranslator(); t != nil {
		translated := t.Translate(e.MessageID, defaultLang, e.Data)
		if translated != e.MessageID {
			return translated
		}
	}

	if len(e.Data) == 0 {
		return e.DefaultMessage
	}

	msg := e.DefaultMessage
	for k, v := range e.Data {
		placeholder := fmt.Sprintf("{{.%s}}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}
	return msg
}

// TranslateByContext translates the error based on the context's language preference
func (e *I18nError) TranslateByContext(c *gin.Context) string {
	if t := GetTranslator(); t != nil {
		translated := t.Translate(e.MessageID, langFromContext(c), e.Data)
		if translated != e.MessageID {
			return translated
		}
	}
	return e.Error()
}

// ErrorWithCode is an error with an HTTP status code for API responses
type ErrorWithCode struct {
	*I18nError
	Code ErrorCode
}

// NewErrorWithCode creates a new error with a code
func NewErrorWithCode(messageID string, code ErrorCode) *ErrorWithCode {
	return &ErrorWithCode{
		I18nError: New(messageID),
		Code:      code,
	}
}

// WithParam returns a copy of the error with one template parameter
// added.
func (e *ErrorWithCode) WithParam(key string, value interface{}) *ErrorWithCode {
	return &ErrorWithCode{
		I18nError: e.I18nError.WithParam(key, value),
		Code:      e.Code,
	}
}

// GetCode returns the error code
func (e *ErrorWithCode) GetCode() ErrorCode {
	return e.Code
}

// TranslateError renders any error for the context's language. Non-i18n
// errors come back verbatim.
func TranslateError(c *gin.Context, err error) string {
	if err == nil {
		return ""
	}

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		return errWithCode.TranslateByContext(c)
	}

	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.TranslateByContext(c)
	}

	return err.Error()
}

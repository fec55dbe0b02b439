package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

// NoticeKind classifies a user notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is the modal-style notification the console shows next to a result.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// Success builds a success notice.
func Success(message string) *Notice {
	return &Notice{Kind: NoticeSuccess, Title: "نجح!", Message: message}
}

// Warning builds a warning notice.
func Warning(message string) *Notice {
	return &Notice{Kind: NoticeWarning, Title: "تنبيه!", Message: message}
}

// Failure builds an error notice.
func Failure(message string) *Notice {
	return &Notice{Kind: NoticeError, Title: "خطأ!", Message: message}
}

// Envelope represents the common response contract.
type Envelope struct {
	Data   interface{}            `json:"data,omitempty"`
	Error  *appErrors.Error       `json:"error,omitempty"`
	Notice *Notice                `json:"notice,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	WithNotice(c, status, data, nil, meta...)
}

// WithNotice sends data together with a notification for the user.
func WithNotice(c *gin.Context, status int, data interface{}, notice *Notice, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Notice: notice}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, notice *Notice) {
	WithNotice(c, http.StatusCreated, data, notice)
}

// Error sends an error response converting the error to the common structure.
// Every error also carries an error notice so the console can surface it.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr, Notice: Failure(appErr.Message)})
}

// ErrorWithData sends an error response that still carries a payload, used
// when a failed operation has state worth rendering (e.g. a failed report).
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Data: data, Error: appErr, Notice: Failure(appErr.Message)})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

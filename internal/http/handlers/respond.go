package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every endpoint answers with.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func RespondData(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, Envelope{
		Success: true,
		Data:    data,
	})
}

func RespondMessage(ctx *gin.Context, status int, data any, message string) {
	ctx.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func RespondList(ctx *gin.Context, data any, count int) {
	ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{
		Success: false,
		Error:   message,
	})
}

// RespondErrorDetail keeps the envelope's error field stable for clients that
// match on it and carries the human-readable specifics in message.
func RespondErrorDetail(ctx *gin.Context, status int, errMsg, detail string) {
	ctx.JSON(status, Envelope{
		Success: false,
		Error:   errMsg,
		Message: detail,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}

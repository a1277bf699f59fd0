// Package controller holds the HTTP helpers shared by the employee and admin controllers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/middleware"
	"github.com/rs/zerolog/log"
)

// ParseID reads a positive integer path parameter. On failure it writes a 400 and returns false.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format", Details: raw})
		return 0, false
	}
	return uint(id), true
}

// CurrentUser returns the authenticated user id. It writes a 401 when the request carries none.
func CurrentUser(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return 0, false
	}
	return id, true
}

// BindJSON decodes the body and writes a 400 with the binding error on failure.
func BindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return false
	}
	return true
}

// RespondError renders a service error with the status of its kind.
func RespondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || kind == apperror.KindInternal {
		log.Error().Err(err).Str("path", ctx.FullPath()).Str("requestID", ctx.GetString(middleware.ContextRequestID)).Msg("Request failed")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	log.Info().Str("kind", string(kind)).Str("path", ctx.FullPath()).Msg(appErr.Message)
	if kind == apperror.KindConflict {
		resp := dto.ConflictResponse{Message: appErr.Message}
		if appErr.Existing != nil {
			score, at := appErr.Existing.Score, appErr.Existing.SubmittedAt
			resp.Score = &score
			resp.SubmittedAt = &at
		}
		ctx.JSON(status, resp)
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: appErr.Message})
}

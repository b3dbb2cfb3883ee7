package handlers

import (
	"errors"
	"net/http"

	"github.com/avigeya/projectboard/internal/auth"
	"github.com/avigeya/projectboard/internal/dto"
	apierrors "github.com/avigeya/projectboard/internal/errors"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppDataHandler serves the initial snapshot endpoint.
type AppDataHandler struct {
	authenticator  auth.Authenticator
	appDataService *services.AppDataService
	log            *zap.Logger
}

// NewAppDataHandler creates a new AppDataHandler.
func NewAppDataHandler(authenticator auth.Authenticator, appDataService *services.AppDataService, log *zap.Logger) *AppDataHandler {
	return &AppDataHandler{
		authenticator:  authenticator,
		appDataService: appDataService,
		log:            log,
	}
}

// GetAppData authenticates the request body and returns the caller's
// snapshot. A failed signature is 403; an unresolvable identity or an
// unknown user is 400.
func (h *AppDataHandler) GetAppData(c *gin.Context) {
	var req dto.AppDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tgUserID, err := h.authenticator.Authenticate(req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSignature) {
			h.log.Warn("rejected init data with bad signature")
			apierrors.Forbidden(c, "Invalid initData signature")
			return
		}
		apierrors.BadRequest(c, "No usable identity in request")
		return
	}

	appData, err := h.appDataService.GetAppData(tgUserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.BadRequest(c, "User is not registered")
			return
		}
		h.log.Error("failed to assemble app data", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, appData)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

// respondServiceError translates a service error into the matching HTTP
// response. Callers can rely on error identity alone; messages stay a
// presentation concern.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		apierrors.BadRequestWithDetails(c, "Validation failed", verr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrNotOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrStatusInUse),
		errors.Is(err, services.ErrLabelInUse),
		errors.Is(err, services.ErrUserAuthorsTasks):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI task generation is not configured. Set OPENAI_API_KEY to enable it.")
	case errors.Is(err, services.ErrAINoTasksGenerated):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
	default:
		apierrors.InternalError(c, "")
	}
}

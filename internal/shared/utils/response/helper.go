package response

import (
	"stagebook/internal/shared/apperr"
	"stagebook/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError renders err with the status code of its kind
func RespondError(c *gin.Context, message string, err error) {
	code := apperr.HTTPStatus(err)

	detail := ErrorDetail{Kind: string(apperr.KindInternal), Code: "INTERNAL_ERROR", Detail: "internal server error"}
	if appErr, ok := apperr.As(err); ok {
		detail = ErrorDetail{Kind: string(appErr.Kind), Code: appErr.Code, Detail: appErr.Error()}
	}
	if code >= 500 {
		_ = c.Error(err)
		logger.GetDefault().LogHTTPError(c, err, code)
	}

	RespondJSON(c, "error", code, message, nil, detail)
}

package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	cerr "github.com/muhammadheryan/contacts/utils/errors"
	"github.com/muhammadheryan/contacts/utils/logger"
	"go.uber.org/zap"
)

// Response is the envelope of every /api response.
type Response struct {
	Success bool               `json:"success"`
	Data    interface{}        `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Code    string             `json:"code,omitempty"`
	Errors  []model.FieldError `json:"errors,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("err encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError renders err as a failure envelope. Errors that are not a CustomError are
// reported as internal errors. The diagnostic detail is only written when exposeDetail is set.
func writeError(w http.ResponseWriter, err error, exposeDetail bool) {
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		ce = cerr.SetCustomError(constant.ErrInternal).WithDetail(err)
	}

	res := Response{
		Success: false,
		Message: ce.Error(),
		Code:    ce.ErrorCode(),
		Errors:  ce.FieldErrors(),
	}
	if exposeDetail {
		res.Error = ce.Detail()
	}
	writeJSON(w, ce.ErrorHTTPCode(), res)
}

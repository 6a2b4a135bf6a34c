package handler

import (
	"errors"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	requestService "github.com/Avi18971911/Lens/pkg/request/service"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"net/http"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNegativeViewport  = errors.New("width and height must not be negative")
	ErrInvalidViewport   = errors.New("width and height must be finite numbers")
	ErrUnknownFormat     = errors.New("format must be json or logfmt")
	ErrNoRequestSelected = errors.New("a request must be selected before selecting a span")
)

// ErrorMessage is the body of every failed request
// @swagger:model ErrorMessage
type ErrorMessage struct {
	// Human readable description of the failure
	Message string `json:"message"`
}

func HttpError(w http.ResponseWriter, message string, code int, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(ErrorMessage{Message: message})
	if err != nil {
		logger.Error("Error encountered when encoding error response", zap.Error(err))
	}
}

// lookupError answers a failed lookup with 404 for unknown requests or spans and 500 otherwise.
func lookupError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if errors.Is(err, requestService.ErrRequestNotFound) || errors.Is(err, trace_view.ErrSpanNotFound) {
		HttpError(w, err.Error(), http.StatusNotFound, logger)
		return
	}
	logger.Error("Error encountered when looking up request data", zap.Error(err))
	HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
}

func writeJson(w http.ResponseWriter, res interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		logger.Error("Error encountered when encoding response", zap.Error(err))
		HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
	}
}

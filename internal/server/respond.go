package server

import (
	"encoding/json"
	"net/http"

	"github.com/mgrundel/timelane/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusFor maps error codes to HTTP status codes. Validation refusals
// are 422: the request was well formed but the schedule set rejects it.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeScheduleNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDuplicateID:
		return http.StatusConflict
	case errors.ErrCodeStartAfterEnd,
		errors.ErrCodeParentNotFound,
		errors.ErrCodeLevelExceedsParent,
		errors.ErrCodeTimeRangeExceedsParent,
		errors.ErrCodeTimeRangeOverlaps,
		errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)
	s.respondJSON(w, statusFor(code), body)
}

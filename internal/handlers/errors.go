package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"profile-api/internal/models"
	"profile-api/internal/services"
)

// Response messages
const (
	MsgOK               = "Operation completed"
	MsgInvalidInput     = "Operation failed"
	MsgIntegrity        = "Integrity error"
	MsgNotFound         = "Profile not found"
	MsgOperational      = "Operational error"
	MsgDatabase         = "Database error"
	MsgUnexpected       = "Unexpected error"
	MsgRouteNotFound    = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgTooLarge         = "Request too large"
)

// MessageResponse is the body of every non-data response
type MessageResponse struct {
	Msg     string                  `json:"msg" example:"Operation completed"`
	Details models.ValidationErrors `json:"details,omitempty"`
}

// errorResponse maps a service error onto a status code and body
func errorResponse(err error) (int, MessageResponse) {
	svcErr := services.AsError(err)

	switch svcErr.Kind {
	case services.KindInvalidInput:
		return http.StatusBadRequest, MessageResponse{Msg: MsgInvalidInput, Details: svcErr.Details}
	case services.KindConflict:
		return http.StatusBadRequest, MessageResponse{Msg: MsgIntegrity}
	case services.KindNotFound:
		return http.StatusNotFound, MessageResponse{Msg: MsgNotFound}
	case services.KindStorage:
		if svcErr.IsOperational() {
			return http.StatusInternalServerError, MessageResponse{Msg: MsgOperational}
		}
		return http.StatusInternalServerError, MessageResponse{Msg: MsgDatabase}
	default:
		return http.StatusInternalServerError, MessageResponse{Msg: MsgUnexpected}
	}
}

// decodeErrorResponse describes why a request body could not be decoded
func decodeErrorResponse(err error) (int, MessageResponse) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, MessageResponse{Msg: MsgTooLarge}
	}

	detail := &models.ValidationError{
		Field:   "body",
		Tag:     "json",
		Message: "request body must be a JSON object",
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		detail = &models.ValidationError{
			Field:   typeErr.Field,
			Tag:     "type",
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		}
	}

	return http.StatusBadRequest, MessageResponse{
		Msg:     MsgInvalidInput,
		Details: models.ValidationErrors{detail},
	}
}

func invalidIDResponse() (int, MessageResponse) {
	return http.StatusBadRequest, MessageResponse{
		Msg: MsgInvalidInput,
		Details: models.ValidationErrors{{
			Field:   "id",
			Tag:     "gt",
			Message: "id must be a positive integer",
		}},
	}
}

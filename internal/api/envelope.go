package api

import (
	"encoding/json"
	"net/http"

	"stash/internal/services"
)

// Envelope is the failure wire shape. Success payloads embed their own
// success flag through WriteSuccess.
type Envelope struct {
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

// successEnvelope wraps a payload under a data key with the success flag.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// WriteSuccess emits a success envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: payload})
}

// WriteError maps a service error onto the failure envelope and the
// corresponding HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	tag := services.Tag(err)
	writeJSON(w, StatusForTag(tag), Envelope{
		Success:   false,
		ErrorType: tag,
		Message:   publicMessage(tag, err),
	})
}

// WriteFailure emits a failure envelope with an explicit tag and message.
func WriteFailure(w http.ResponseWriter, tag, message string) {
	writeJSON(w, StatusForTag(tag), Envelope{Success: false, ErrorType: tag, Message: message})
}

// StatusForTag maps a stable error tag to its HTTP status code.
func StatusForTag(tag string) int {
	switch tag {
	case "invalid_url", "validation_error":
		return http.StatusBadRequest
	case "unauthorized":
		return http.StatusUnauthorized
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "transcript_unavailable", "no_captions", "video_unavailable",
		"network_error", "invalid_transcript":
		return http.StatusBadGateway
	case "summarization_failed", "capability_absent":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps internal failure detail out of responses while passing
// through messages that describe the caller's mistake.
func publicMessage(tag string, err error) string {
	switch tag {
	case "internal_error":
		return "internal error"
	default:
		if err == nil {
			return tag
		}
		return err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response codes carried in the envelope.
const (
	CodeSuccess = 0

	// Client errors (1000-1999).
	CodeInvalidParams = 1000
	CodeMissingParams = 1001
	CodeInvalidSort   = 1002

	// Server errors (2000-2999).
	CodeServerError = 2000
)

// CodeMessages maps response codes to their default messages.
var CodeMessages = map[int]string{
	CodeSuccess:       "success",
	CodeInvalidParams: "invalid parameters",
	CodeMissingParams: "missing required parameter",
	CodeInvalidSort:   "unknown sort key",
	CodeServerError:   "internal server error",
}

// Response is the envelope every endpoint returns.
type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// writeJSON encodes resp before touching the response so an encoding
// failure still reaches the client as a server error envelope.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to encode response", "error", err, "code", resp.Code)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Response{
			Code:    CodeServerError,
			Message: CodeMessages[CodeServerError],
			Data:    map[string]any{},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	})
}

// writeError responds with the code's default message, or message when non-empty.
func writeError(w http.ResponseWriter, status, code int, message string) {
	if message == "" {
		message = CodeMessages[code]
	}
	writeJSON(w, status, Response{
		Code:    code,
		Message: message,
		Data:    map[string]any{},
	})
}

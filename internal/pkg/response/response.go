package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/myling/study-backend/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// Error writes an error body. The detail is shown to the client for 4xx
// statuses only; server-side failures keep their cause in the logs.
func Error(w http.ResponseWriter, status int, message string, detail error) error {
	resp := entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if detail != nil && status < http.StatusInternalServerError {
		resp.Message = message + ": " + detail.Error()
	}
	return JSON(w, status, resp)
}

// Attachment writes a generated file as a download.
func Attachment(w http.ResponseWriter, contentType, disposition string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(data)
	return err
}

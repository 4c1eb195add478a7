package httpx

import (
	"encoding/json"
	"net/http"

	"bookreview/internal/apperr"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// SuccessResponse is the envelope around every successful response.
type SuccessResponse struct {
	Status     string `json:"status"`
	Results    *int   `json:"results,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope around every failed response. Status is
// "fail" for client errors and "error" for server errors.
type ErrorResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

const unhandledMessage = "Something went wrong"

// WriteJSON writes body as JSON outside the success/failure envelopes.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, SuccessResponse{Status: statusSuccess, Data: data})
}

func JSONSuccessCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, SuccessResponse{Status: statusSuccess, Data: data})
}

// JSONList writes a page of results with its item count and pagination.
func JSONList(w http.ResponseWriter, data any, results int, pagination any) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Status:     statusSuccess,
		Results:    &results,
		Pagination: pagination,
		Data:       data,
	})
}

func JSONSuccessNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONFail writes a client failure envelope without going through apperr.
func JSONFail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Status: statusFail, Message: message})
}

// JSONError is the single translation point from an error to a response.
// Application errors keep their status and message; anything else becomes
// a generic 500 and is logged with the request ID.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.KindOf(err) == apperr.KindUnhandled {
		LoggerFrom(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("unhandled error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Status:  statusError,
			Message: unhandledMessage,
		})
		return
	}

	appErr, _ := apperr.As(err)
	writeJSON(w, appErr.Kind.Status(), ErrorResponse{
		Status:  statusFail,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

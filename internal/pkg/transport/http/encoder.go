package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
)

type (
	DecodeRequestFunc  func(r *http.Request) (interface{}, error)
	EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error
)

// MakeHandlerFunc adapts a go-kit endpoint to an http.HandlerFunc.
func MakeHandlerFunc(e endpoint.Endpoint, dec DecodeRequestFunc, enc EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := dec(r)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		response, err := e(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		if err := enc(ctx, w, response); err != nil {
			slog.ErrorContext(ctx, "failed to encode response", slog.Any("error", err))
		}
	}
}

// DecodeRequest binds the JSON body into a new T through its render.Binder.
// Body errors that are not already application errors become 400.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](r *http.Request) (interface{}, error) {
	request := PT(new(T))

	if err := render.Bind(r, request); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid request body",
			Cause:      err,
		}
	}

	return request, nil
}

// ResponseWithBody is the common method to encode all response types to the client.
func ResponseWithBody(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

func NoContentResponse(_ context.Context, w http.ResponseWriter, _ interface{}) error {
	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ErrorResponse encodes the error response to the client. it will check if it's a sentinel error or unknown error.
func ErrorResponse(ctx context.Context, err error, respWriter http.ResponseWriter) {
	var (
		appErr     exception.ApplicationError
		message    string
		statusCode int
	)

	if errors.As(err, &appErr) {
		statusCode = appErr.StatusCode
		message = appErr.Message
	} else {
		statusCode = http.StatusInternalServerError
		message = err.Error()

		slog.ErrorContext(ctx, message, slog.Any("error", err))
	}

	respWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	respWriter.WriteHeader(statusCode)

	//nolint:errcheck,errchkjson
	json.NewEncoder(respWriter).Encode(dto.ErrorResponse{
		Error: message,
	})
}

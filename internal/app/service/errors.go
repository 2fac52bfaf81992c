package service

import (
	"net/http"

	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
)

var ErrInvalidMonth = exception.ApplicationError{
	Message:    "month must be in YYYY-MM format",
	StatusCode: http.StatusBadRequest,
}

var ErrPricingInfoRequired = exception.ApplicationError{
	Message:    "pricing_info is required",
	StatusCode: http.StatusBadRequest,
}

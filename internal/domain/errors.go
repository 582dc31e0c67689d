package domain

import "errors"

var (
	// ErrProtocolNotFound is returned when a protocol cannot be resolved locally or upstream
	ErrProtocolNotFound = errors.New("protocol not found")

	// ErrInvalidMetricKind is returned when a metric kind is not one of fees, revenue or holders_revenue
	ErrInvalidMetricKind = errors.New("invalid metric kind")

	// ErrInvalidMetricPreference is returned when a metric preference is not supported
	ErrInvalidMetricPreference = errors.New("invalid metric preference")

	// ErrInvalidWindow is returned when an aggregation window is not in the allowed set
	ErrInvalidWindow = errors.New("invalid aggregation window")
)

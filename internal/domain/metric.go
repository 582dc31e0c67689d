package domain

import (
	"fmt"
	"strings"
)

// MetricKind is the normalized category of a protocol metric
type MetricKind string

const (
	MetricKindFees           MetricKind = "fees"
	MetricKindRevenue        MetricKind = "revenue"
	MetricKindHoldersRevenue MetricKind = "holders_revenue"
)

// DefaultMetricKinds is the ingestion order used when a run does not request specific kinds
var DefaultMetricKinds = []MetricKind{
	MetricKindHoldersRevenue,
	MetricKindRevenue,
	MetricKindFees,
}

// IsValid checks if a metric kind is supported
func (k MetricKind) IsValid() bool {
	return k == MetricKindFees ||
		k == MetricKindRevenue ||
		k == MetricKindHoldersRevenue
}

// UpstreamDataType returns the upstream dataType query value for the metric kind
func (k MetricKind) UpstreamDataType() string {
	switch k {
	case MetricKindFees:
		return "dailyFees"
	case MetricKindRevenue:
		return "dailyRevenue"
	case MetricKindHoldersRevenue:
		return "dailyHoldersRevenue"
	default:
		return ""
	}
}

// ParseMetricKind parses a metric kind string
func ParseMetricKind(s string) (MetricKind, error) {
	k := MetricKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMetricKind, s)
	}
	return k, nil
}

// MetricPreference selects the metric order used when picking a metric for aggregation
type MetricPreference string

const (
	MetricPreferenceAuto           MetricPreference = "auto"
	MetricPreferenceHoldersRevenue MetricPreference = "holders_revenue"
	MetricPreferenceRevenue        MetricPreference = "revenue"
	MetricPreferenceFees           MetricPreference = "fees"
)

// Order returns the metric kinds in the order they should be tried
func (p MetricPreference) Order() []MetricKind {
	switch p {
	case MetricPreferenceRevenue:
		return []MetricKind{MetricKindRevenue, MetricKindHoldersRevenue, MetricKindFees}
	case MetricPreferenceFees:
		return []MetricKind{MetricKindFees, MetricKindRevenue, MetricKindHoldersRevenue}
	default:
		return []MetricKind{MetricKindHoldersRevenue, MetricKindRevenue, MetricKindFees}
	}
}

// IsValid checks if a metric preference is supported
func (p MetricPreference) IsValid() bool {
	switch p {
	case MetricPreferenceAuto, MetricPreferenceHoldersRevenue, MetricPreferenceRevenue, MetricPreferenceFees:
		return true
	default:
		return false
	}
}

// ParseMetricPreference parses a metric preference, empty means auto
func ParseMetricPreference(s string) (MetricPreference, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MetricPreferenceAuto, nil
	}
	p := MetricPreference(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMetricPreference, s)
	}
	return p, nil
}

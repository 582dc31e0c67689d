package defillama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
)

// FlexString accepts both JSON strings and numbers
type FlexString string

// UnmarshalJSON decodes a string or a number into a string
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = FlexString(n.String())
	return nil
}

// CatalogEntry is one protocol of the upstream fees overview
type CatalogEntry struct {
	DefillamaID     FlexString `json:"defillamaId"`
	ID              FlexString `json:"id"`
	Name            string     `json:"name"`
	DisplayName     string     `json:"displayName"`
	Slug            string     `json:"slug"`
	Category        string     `json:"category"`
	Chains          []string   `json:"chains"`
	Logo            string     `json:"logo"`
	Module          string     `json:"module"`
	ParentProtocol  string     `json:"parentProtocol"`
	LinkedProtocols []string   `json:"linkedProtocols"`
	HasBreakdown    bool       `json:"hasLabelBreakdown"`
}

// UpstreamID returns the stable upstream identifier of the entry
func (e *CatalogEntry) UpstreamID() string {
	if e.DefillamaID != "" {
		return string(e.DefillamaID)
	}
	if e.ID != "" {
		return string(e.ID)
	}
	return e.Slug
}

// CatalogResponse represents the fees overview response
type CatalogResponse struct {
	Protocols []CatalogEntry `json:"protocols"`
}

// SeriesPoint is a [unixTimestampSeconds, value|valueMap] pair
type SeriesPoint struct {
	Timestamp int64
	Value     domain.Value
}

// UnmarshalJSON decodes a two-element JSON array
func (p *SeriesPoint) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid series point: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid series point: expected 2 elements, got %d", len(pair))
	}

	var ts FlexString
	if err := json.Unmarshal(pair[0], &ts); err != nil {
		return fmt.Errorf("invalid series timestamp: %w", err)
	}
	sec, err := strconv.ParseFloat(string(ts), 64)
	if err != nil {
		return fmt.Errorf("invalid series timestamp %q: %w", ts, err)
	}
	p.Timestamp = int64(sec)

	return json.Unmarshal(pair[1], &p.Value)
}

// SummaryResponse represents the per-protocol summary response
type SummaryResponse struct {
	TotalDataChart          []SeriesPoint `json:"totalDataChart"`
	TotalDataChartBreakdown []SeriesPoint `json:"totalDataChartBreakdown"`
}

// MetricSummary is the full metric series of one protocol
type MetricSummary struct {
	Points       []SeriesPoint
	HasBreakdown bool
}

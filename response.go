package rscheck

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when the status service answers with a body that cannot be
// decoded as a status document.
var ErrInvalidResponse = errors.New("invalid response")

// StatusResponse is the status document returned by the status service. Every field is
// optional and a nil pointer means the field was absent, which is distinct from "".
type StatusResponse struct {
	Status     *string `json:"status"`
	LastUpdate *string `json:"lastUpdate"`
	Message    *string `json:"message"`
	Meta       *Meta   `json:"meta"`
}

// Meta holds the polling metadata of a resource.
type Meta struct {
	PollingInterval *string `json:"pollingInterval"`
}

// PollingInterval returns the polling interval and whether it was present. A missing meta
// object counts as a missing polling interval.
func (r *StatusResponse) PollingInterval() (string, bool) {
	if r.Meta == nil || r.Meta.PollingInterval == nil {
		return "", false
	}
	return *r.Meta.PollingInterval, true
}

// ParseResponse decodes a status document. All decoding failures wrap ErrInvalidResponse.
func ParseResponse(body []byte) (*StatusResponse, error) {
	response := &StatusResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return response, nil
}

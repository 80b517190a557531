package rscheck

import "strings"

// Values of the status field that the status service is known to report.
const (
	StatusOK      = "OK"
	StatusUnknown = "UNKNOWN"
	StatusError   = "ERROR"
)

// Classify derives the primary Severity from the status field of a response.
//
// A missing status violates the service contract and is CRITICAL. "OK" maps to OK and
// "UNKNOWN", which the service reports for resources it has not polled yet, maps to WARNING.
// Any other value, "ERROR" included, is CRITICAL.
func Classify(response *StatusResponse) Severity {
	if response == nil || response.Status == nil {
		return SeverityCritical
	}
	switch *response.Status {
	case StatusOK:
		return SeverityOK
	case StatusUnknown:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// Enrich appends the diagnostic fields of a response to message and merges the freshness of
// the response into prior.
//
// A missing lastUpdate or polling interval yields WARNING. The result never drops below
// prior when prior is WARNING or CRITICAL, and a WARNING or OK prior is never raised past
// WARNING.
func Enrich(response *StatusResponse, prior Severity, message string) (Severity, string) {
	if response == nil {
		response = &StatusResponse{}
	}
	severity := SeverityOK

	var builder strings.Builder
	builder.WriteString(message)
	if response.LastUpdate != nil {
		builder.WriteString(" - Last update: " + *response.LastUpdate)
	} else {
		severity = SeverityWarning
	}
	if interval, ok := response.PollingInterval(); ok {
		builder.WriteString(" - Polling: " + interval)
	} else {
		severity = SeverityWarning
	}
	if response.Message != nil {
		builder.WriteString(" - Details: " + *response.Message)
	}

	return Merge(severity, prior), builder.String()
}

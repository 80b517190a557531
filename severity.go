package rscheck

// Severity is the outcome level reported to the monitoring daemon. Its integer value is the
// plugin exit code.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
	// SeverityDependent is reserved; no check path produces it.
	SeverityDependent
)

// ExitCode returns the process exit code for the Severity.
func (s Severity) ExitCode() int {
	return int(s)
}

// String returns the upper-case name of the Severity as printed on the plugin output line.
func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityDependent:
		return "DEPENDENT"
	default:
		return "UNKNOWN"
	}
}

// rank orders OK < WARNING < CRITICAL. UNKNOWN and DEPENDENT are not part of that order.
func (s Severity) rank() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return -1
	}
}

// Merge returns the more severe of a and b with respect to OK < WARNING < CRITICAL.
//
// A Severity outside that order (UNKNOWN, DEPENDENT) loses against any member of it, so a
// merge can escalate a result but never lower it once it has reached WARNING or CRITICAL.
func Merge(a, b Severity) Severity {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

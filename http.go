package rscheck

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"
)

const (
	// DefaultMaxRedirects is the number of redirects followed before a request is aborted
	DefaultMaxRedirects = 30
	// MaxBodySize caps the amount of response body that is read from the status service
	MaxBodySize = 1 << 20
)

// ErrTooManyRedirects is returned by the HTTPFetcher when the redirect limit is exceeded.
var ErrTooManyRedirects = errors.New("too many redirects")

// TransportErrorKind classifies a failed HTTP exchange.
type TransportErrorKind int

// Transport error kinds.
//
// Constants:
//   - KindUnknown: Any failure not covered by another kind.
//   - KindConnection: The connection could not be established or broke down.
//   - KindTimeout: The request did not complete within the timeout.
//   - KindRedirects: The redirect limit was exceeded.
//   - KindHTTP: The server did not speak valid HTTP.
const (
	KindUnknown TransportErrorKind = iota
	KindConnection
	KindTimeout
	KindRedirects
	KindHTTP
)

// String returns the diagnostic text that is appended to the plugin message.
func (k TransportErrorKind) String() string {
	switch k {
	case KindConnection:
		return "Connection error"
	case KindTimeout:
		return "Timeout"
	case KindRedirects:
		return "Too many redirects"
	case KindHTTP:
		return "HTTP error"
	default:
		return "Unknown communications error"
	}
}

// TransportError is returned by a Fetcher when no HTTP response could be obtained.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher performs a single GET request and returns the HTTP status code and body.
//
// Implementations return a *TransportError when the exchange fails before a status code is
// available.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (int, []byte, error)
}

// HTTPFetcher is the Fetcher used against the real status service.
type HTTPFetcher struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// Fetch issues a GET request to url with the configured timeout and redirect limit.
//
// Parameters:
//   - ctx: A context.Context that bounds the request in addition to the timeout.
//   - url: The URL to request.
//
// Returns:
//   - The HTTP status code of the final response.
//   - The response body, read up to MaxBodySize bytes.
//   - A *TransportError if the exchange could not be completed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRedirects := f.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, &TransportError{Kind: KindUnknown, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Kind: classifyTransportError(err), Err: err}
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to close response body for %q: %s\n", url, err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Kind: classifyTransportError(err),
			Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return resp.StatusCode, body, nil
}

// classifyTransportError maps an error returned by the HTTP client to a TransportErrorKind.
// Timeouts are checked first since a dial timeout is also a *net.OpError.
func classifyTransportError(err error) TransportErrorKind {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return KindTimeout
	}
	if errors.Is(err, ErrTooManyRedirects) {
		return KindRedirects
	}

	var protoErr *http.ProtocolError
	var recordErr tls.RecordHeaderError
	if errors.As(err, &protoErr) || errors.As(err, &recordErr) ||
		strings.Contains(err.Error(), "malformed HTTP") {
		return KindHTTP
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return KindConnection
	}
	return KindUnknown
}

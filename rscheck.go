// Package rscheck implements a status check for resources registered with a research
// software status service
package rscheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default timeout that is used when no specific timeout is requested
	DefaultTimeout = time.Second * 5
	// DefaultBaseURL is the status service the checks are run against
	DefaultBaseURL = "https://science.canarie.ca/researchsoftware/rs/"
	// DefaultLabel prefixes every plugin message
	DefaultLabel = "Research Software"
	// Version is reported in the User-Agent header
	Version = "1.0.0"
)

type Config struct {
	BaseURL      string
	Label        string
	Timeout      time.Duration
	MaxRedirects int
}

type Checker struct {
	Config  Config
	Fetcher Fetcher
	Logger  *slog.Logger
}

// Result is the outcome of a single check as reported to the monitoring daemon.
type Result struct {
	Severity Severity
	Message  string
}

// String renders the plugin output line, trailing space included.
func (r Result) String() string {
	return fmt.Sprintf("%s - %s ", r.Severity, r.Message)
}

func New(config Config) *Checker {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Label == "" {
		config.Label = DefaultLabel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	return &Checker{
		Config: config,
		Fetcher: &HTTPFetcher{
			Timeout:      config.Timeout,
			MaxRedirects: config.MaxRedirects,
			UserAgent:    "rscheck/" + Version,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// URL returns the status URL of the resource with the given id.
func (c *Checker) URL(id int) string {
	return strings.TrimRight(c.Config.BaseURL, "/") + "/resource/" + strconv.Itoa(id) + "/status"
}

// UsageResult returns the Result reported when the resource id could not be determined.
func UsageResult(label string) Result {
	if label == "" {
		label = DefaultLabel
	}
	return Result{Severity: SeverityWarning, Message: label + " - Usage error"}
}

// ConfigResult returns the Result reported when the plugin configuration is unusable.
func ConfigResult(label string) Result {
	if label == "" {
		label = DefaultLabel
	}
	return Result{Severity: SeverityUnknown, Message: label + " - Configuration error"}
}

// Check queries the status service for the resource with the given id and translates the
// answer into a Result. It never fails: transport, protocol and decoding problems are
// reported as CRITICAL results.
//
// Steps:
//  1. Fetch the status document of the resource.
//  2. Report CRITICAL for transport errors and for any HTTP status other than 200.
//  3. Report CRITICAL if the body is not a status document.
//  4. Classify the status field and enrich the message with the remaining fields.
func (c *Checker) Check(ctx context.Context, id int) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.logger()
	message := fmt.Sprintf("%s resource %d", c.Config.Label, id)
	url := c.URL(id)

	logger.Debug("requesting resource status", slog.String("url", url))
	code, body, err := c.fetcher().Fetch(ctx, url)
	if err != nil {
		kind := KindUnknown
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			kind = transportErr.Kind
		}
		logger.Debug("status request failed", slog.String("kind", kind.String()), slog.Any("error", err))
		return Result{Severity: SeverityCritical, Message: message + " - " + kind.String()}
	}
	logger.Debug("status service responded", slog.Int("status_code", code), slog.Int("body_size", len(body)))
	if code != http.StatusOK {
		return Result{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("%s - HTTP response status code %d", message, code),
		}
	}

	response, err := ParseResponse(body)
	if err != nil {
		logger.Debug("failed to decode status document", slog.Any("error", err))
		return Result{Severity: SeverityCritical, Message: message + " - Invalid response"}
	}

	severity := Classify(response)
	severity, message = Enrich(response, severity, message)
	logger.Debug("resource classified", slog.String("severity", severity.String()))
	return Result{Severity: severity, Message: message}
}

func (c *Checker) fetcher() Fetcher {
	if c.Fetcher == nil {
		return &HTTPFetcher{Timeout: c.Config.Timeout, MaxRedirects: c.Config.MaxRedirects}
	}
	return c.Fetcher
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// ErrInvalidID is returned by ParseID for arguments that are not a non-negative integer.
var ErrInvalidID = errors.New("resource id must be a non-negative integer")

// ParseID parses the numeric resource id given on the command line.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}
	if id < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return id, nil
}

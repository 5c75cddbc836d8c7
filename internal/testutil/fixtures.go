// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
)

// SilentLogger returns a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Suppress all logs
	}))
}

// APIError returns a provider error carrying the given EC2 error code.
func APIError(code string) error {
	return &smithy.GenericAPIError{
		Code:    code,
		Message: "simulated " + code,
		Fault:   smithy.FaultClient,
	}
}

// DryRunError is what EC2 returns when DryRun is set and the call would have succeeded.
func DryRunError() error {
	return APIError("DryRunOperation")
}

// UnauthorizedError is what EC2 returns when the caller lacks permission for the call.
func UnauthorizedError() error {
	return APIError("UnauthorizedOperation")
}

// StubHTTPClient lets tests answer SDK requests without network access.
type StubHTTPClient func(*http.Request) (*http.Response, error)

// Do implements the SDK HTTPClient interface.
func (f StubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// EC2ErrorResponse builds an EC2 query protocol error response.
func EC2ErrorResponse(status int, code, message string) *http.Response {
	body := fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>`+
			`<Response><Errors><Error><Code>%s</Code><Message>%s</Message></Error></Errors>`+
			`<RequestID>00000000-0000-0000-0000-000000000000</RequestID></Response>`,
		code, message)
	return xmlResponse(status, body)
}

// EC2XMLResponse builds a successful EC2 query protocol response with the given body.
func EC2XMLResponse(body string) *http.Response {
	return xmlResponse(http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?>`+body)
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/xml;charset=UTF-8"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

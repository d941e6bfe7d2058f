package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-chat-client/models"
)

// mapHTTPError translates an HTTP response into one of the package sentinel
// errors. The backend wraps every body in {success, message?, ...}; the
// message field is preferred over the raw body, with the status text as the
// last fallback.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg := extractMessage(resp.Body())
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	case resp.StatusCode() >= http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
	}
}

// mapEnvelope rejects logically failed responses delivered with a 2xx
// status: success=false is a validation failure carrying the backend
// message.
func mapEnvelope(env models.Envelope) error {
	if env.Success {
		return nil
	}

	msg := strings.TrimSpace(env.Message)
	if msg == "" {
		msg = "request rejected"
	}
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func extractMessage(body []byte) string {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return strings.TrimSpace(env.Message)
	}

	return strings.TrimSpace(string(body))
}

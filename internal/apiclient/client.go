// Package apiclient talks to the remote library API and translates HTTP
// outcomes into the Result variants the handlers branch on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds every outbound call; there is no retry and no
// explicit cancellation beyond it.
const DefaultTimeout = 30 * time.Second

// Client issues requests against a single configured base URL. All entity
// services share one Client.
type Client struct {
	baseURL string
	http    *http.Client
	log     *log.Logger
}

// New creates a Client for the given API root. The trailing slash of
// baseURL is trimmed so resource paths can be appended verbatim. A nil
// httpClient gets the default 30 second timeout.
func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger.With("component", "apiclient"),
	}
}

// call performs one HTTP round trip and translates the outcome. payload,
// when non-nil, is sent as a JSON body.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, payload any) Result[T] {
	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return unexpectedFailure[T](fmt.Errorf("serializing %s %s request: %w", method, path, err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return unexpectedFailure[T](fmt.Errorf("building %s %s request: %w", method, path, err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("llamando a la API", "method", method, "url", rawURL)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("no se pudo conectar con la API", "method", method, "url", rawURL, "err", err)
		return connectivityFailure[T](fmt.Errorf("no se pudo conectar con la API: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("error leyendo respuesta de la API", "method", method, "url", rawURL, "err", err)
		return connectivityFailure[T](fmt.Errorf("leyendo respuesta de la API: %w", err))
	}

	result := translate[T](resp.StatusCode, data)
	c.log.Debug("respuesta de la API", "method", method, "url", rawURL,
		"status", resp.StatusCode, "outcome", result.Outcome.String())
	return result
}

// translate maps one remote HTTP outcome to a Result variant. A 304 is
// only produced by updates and is surfaced like a 404: nothing changed.
func translate[T any](status int, body []byte) Result[T] {
	switch {
	case status >= 200 && status < 300:
		var value T
		if len(bytes.TrimSpace(body)) == 0 {
			return success(value)
		}
		if err := json.Unmarshal(body, &value); err != nil {
			return unexpectedFailure[T](fmt.Errorf("la respuesta de la API no tuvo el formato esperado: %w", err))
		}
		return success(value)
	case status == http.StatusNotFound, status == http.StatusNotModified:
		return notFound[T]()
	case status == http.StatusConflict:
		return conflict[T](errorDetail(body))
	case status >= 400 && status < 500:
		return validationRejected[T](errorDetail(body))
	default:
		return unexpectedFailure[T](fmt.Errorf("la API respondió %d: %s", status, errorDetail(body)))
	}
}

// Package gnocchiapi implements a thin client for the v1 REST surface of a
// Gnocchi-style time-series store. The store models data as resources owning
// named metric streams ("entities"); measurements can only be posted to
// streams that already exist, so callers get explicit Missing/Conflict
// results to drive their own creation protocol instead of errors.
package gnocchiapi

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

	"github.com/sirupsen/logrus"
)

// maxBodySnippet bounds how much of an unexpected response body gets kept for
// logging.
const maxBodySnippet = 512

// Client handles communication with the time-series store.
type Client struct {
	client  *http.Client
	baseURL string
	policy  string
	logger  logrus.FieldLogger
}

// NewClient returns a new client for the store API.
func NewClient(logger logrus.FieldLogger, conf Config) *Client {
	timeout := conf.Timeout.TimeDuration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(conf.URL.String, "/") + "/v1",
		policy:  conf.Policy.String,
		logger:  logger,
	}
}

// Policy returns the configured retention/aggregation policy name.
func (c *Client) Policy() string {
	return c.policy
}

// PolicyBinding returns the JSON object bound to every metric stream the
// dispatcher creates, e.g. {"policy": "low"}.
func (c *Client) PolicyBinding() map[string]string {
	return map[string]string{"policy": c.policy}
}

// PostMeasures appends a batch of measurements to the given metric stream.
// The payload is a pre-marshalled JSON array of {timestamp, value} objects;
// taking bytes rather than values lets the workflow retry with the exact same
// request body. A 404 maps to Missing.
func (c *Client) PostMeasures(
	ctx context.Context, resourceType, resourceID, metricName string, payload []byte,
) (Result, error) {
	u := fmt.Sprintf("%s/resource/%s/%s/entity/%s/measures",
		c.baseURL, url.PathEscape(resourceType), url.PathEscape(resourceID), url.PathEscape(metricName))
	return c.do(ctx, http.MethodPost, u, payload, Missing)
}

// CreateResource creates a resource, including the metric streams listed in
// its attributes. A 409 maps to Conflict.
func (c *Client) CreateResource(
	ctx context.Context, resourceType string, attrs map[string]interface{},
) (Result, error) {
	u := fmt.Sprintf("%s/resource/%s", c.baseURL, url.PathEscape(resourceType))
	body, err := json.Marshal(attrs)
	if err != nil {
		return Result{}, err
	}
	return c.do(ctx, http.MethodPost, u, body, Conflict)
}

// UpdateResource patches the attributes of an existing resource.
func (c *Client) UpdateResource(
	ctx context.Context, resourceType, resourceID string, attrs map[string]interface{},
) (Result, error) {
	u := fmt.Sprintf("%s/resource/%s/%s",
		c.baseURL, url.PathEscape(resourceType), url.PathEscape(resourceID))
	body, err := json.Marshal(attrs)
	if err != nil {
		return Result{}, err
	}
	return c.do(ctx, http.MethodPatch, u, body, OK)
}

// CreateEntity creates a single metric stream on an existing resource, bound
// to the configured policy. A 409 maps to Conflict.
func (c *Client) CreateEntity(
	ctx context.Context, resourceType, resourceID, metricName string,
) (Result, error) {
	u := fmt.Sprintf("%s/resource/%s/%s/entity",
		c.baseURL, url.PathEscape(resourceType), url.PathEscape(resourceID))
	body, err := json.Marshal(map[string]interface{}{metricName: c.PolicyBinding()})
	if err != nil {
		return Result{}, err
	}
	return c.do(ctx, http.MethodPost, u, body, Conflict)
}

// do runs a single request and classifies the response. The expected status
// says which non-2xx outcome is part of the protocol for this call: Missing
// turns 404s into Missing results, Conflict turns 409s into Conflict results.
// Everything else non-2xx becomes a Failure with the status code and a body
// snippet.
func (c *Client) do(
	ctx context.Context, method, url string, body []byte, expected Status,
) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return Result{Status: OK, Code: resp.StatusCode}, nil
	case resp.StatusCode == http.StatusNotFound && expected == Missing:
		return Result{Status: Missing, Code: resp.StatusCode}, nil
	case resp.StatusCode == http.StatusConflict && expected == Conflict:
		return Result{Status: Conflict, Code: resp.StatusCode}, nil
	}

	snippet, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))
	if err != nil {
		c.logger.WithError(err).Debug("could not read error response body")
	}
	return Result{Status: Failure, Code: resp.StatusCode, Body: string(snippet)}, nil
}

/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Client talks JSON to the remote dashboard API. Every request is aborted after Timeout.
// GET requests are retried with exponential backoff up to MaxRetries times on network
// failures and 5xx responses.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		MaxRetries: maxRetries,
		HTTPClient: &http.Client{},
	}
}

// ToJsonReq converts a Go object to a JSON-encoded HTTP request payload.
func ToJsonReq(payload interface{}) (*bytes.Buffer, error) {
	c, e := json.Marshal(payload)
	if e != nil {
		return nil, e
	}
	return bytes.NewBuffer(c), nil
}

// EncodeParams builds a query string from params, omitting nil values, nil pointers and
// empty strings. Pointers are dereferenced.
func EncodeParams(params map[string]interface{}) url.Values {
	values := url.Values{}
	for key, value := range params {
		if s, ok := formatParam(value); ok {
			values.Set(key, s)
		}
	}
	return values
}

func formatParam(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), v.String() != ""
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	default:
		return fmt.Sprint(v.Interface()), true
	}
}

// Get fetches path with the given query params and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, params map[string]interface{}, out interface{}) error {
	target := c.BaseURL + path
	if query := EncodeParams(params).Encode(); query != "" {
		target += "?" + query
	}

	if c.MaxRetries <= 0 {
		return c.do(ctx, http.MethodGet, target, nil, out)
	}

	operation := func() error {
		err := c.do(ctx, http.MethodGet, target, nil, out)
		var apiErr apierror.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.MaxRetries)), ctx)
	return backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{"url": target, "retry_in": wait}).Warnf("request failed: %v", err)
	})
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := ToJsonReq(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, c.BaseURL+path, payload, out)
}

// Delete expects a 2xx; any body is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.BaseURL+path, nil, nil)
}

// do bounds the request by c.Timeout. A deadline the caller set is reported as the caller's,
// not as the client timeout.
func (c *Client) do(parent context.Context, method, target string, body io.Reader, out interface{}) error {
	ctx, cancel := context.WithTimeout(parent, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	_, err = Call(c.HTTPClient, req, out)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		if parentErr := parent.Err(); parentErr != nil {
			return apierror.NewTransportError(0, fmt.Sprintf("request cancelled: %v", parentErr), err)
		}
		return apierror.NewTransportError(0, fmt.Sprintf("request timed out after %s", c.Timeout), err)
	}
	return err
}

// Call sends req and decodes a JSON response into response when it is not nil.
// Network failures and non-2xx statuses are returned as transport errors.
func Call(client *http.Client, req *http.Request, response interface{}) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return resp, apierror.NewTransportError(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, apierror.NewTransportError(resp.StatusCode, statusText(resp), nil)
	}

	if response == nil || resp.StatusCode == http.StatusNoContent {
		return resp, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return resp, err
	}
	return resp, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

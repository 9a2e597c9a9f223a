package fitsizgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

// MakeRequest executes a single request and returns the raw body. Every
// failure comes back as *ErrorResponse.
func (c *Client) MakeRequest(ctx context.Context, url string, method string, headers http.Header, payload []byte, contentType types.ContentType) (*http.Response, []byte, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, newErrorResponse(nil, nil, err)
	}
	if headers == nil {
		headers = http.Header{}
	}
	if contentType != types.ContentTypeNone {
		headers.Set("Content-Type", string(contentType))
	}
	req.Header = headers

	log := c.Logger.With().
		Str("method", method).
		Str("url", url).
		Str("request_id", headers.Get("X-Request-ID")).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Trace().Err(err).Msg("Request failed")
		return nil, nil, newErrorResponse(nil, nil, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, newErrorResponse(resp, nil, fmt.Errorf("failed to read response body: %w", err))
	}

	log.Trace().
		Int("status_code", resp.StatusCode).
		Int("body_size", len(data)).
		Msg("Received response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, data, newErrorResponse(resp, data, nil)
	}
	return resp, data, nil
}

// MakeRoutingRequest resolves the endpoint in the request store, encodes
// the query and payload and decodes the answer with the endpoint's
// response definition. Endpoints without one return the raw body.
func (c *Client) MakeRoutingRequest(ctx context.Context, path routing.RequestPath, payload routing.PayloadDataInterface, query routing.PayloadDataInterface) (*http.Response, any, error) {
	definition, ok := routing.RequestStoreDefinition[path.Endpoint]
	if !ok {
		return nil, nil, fmt.Errorf("failed to find request definition for endpoint %s", path.Endpoint)
	}

	requestURL := c.baseURL + path.Path
	if query != nil {
		encodedQuery, err := query.Encode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode query for %s: %w", path.Path, err)
		}
		if len(encodedQuery) > 0 {
			requestURL += "?" + string(encodedQuery)
		}
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = payload.Encode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode payload for %s: %w", path.Path, err)
		}
	}

	headers := c.buildHeaders(definition.HeaderOpts)
	resp, respBody, err := c.MakeRequest(ctx, requestURL, definition.Method, headers, body, definition.ContentType)
	if err != nil {
		return resp, nil, err
	}

	if definition.ResponseDefinition == nil {
		return resp, respBody, nil
	}

	respData, err := definition.ResponseDefinition.Decode(respBody)
	if err != nil {
		errResp := newErrorResponse(resp, respBody, fmt.Errorf("failed to decode response from %s: %w", path.Path, err))
		errResp.Message = DecodeErrorMessage
		return resp, nil, errResp
	}
	return resp, respData, nil
}

func assertResponse[T any](respData any, expected string) (T, error) {
	typed, ok := respData.(T)
	if !ok {
		var zero T
		return zero, newErrorResponseTypeAssertFailed(expected)
	}
	return typed, nil
}

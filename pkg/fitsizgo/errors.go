package fitsizgo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/response"
)

const (
	DefaultErrorMessage = "Произошла ошибка сервера"
	DefaultErrorStatus  = http.StatusInternalServerError
)

// DecodeErrorMessage marks a successful answer whose body couldn't be
// decoded. Status keeps the 2xx code.
const DecodeErrorMessage = "failed to decode response"

var ErrResponseTypeAssertFailed = errors.New("failed to assert response type")

func newErrorResponseTypeAssertFailed(expected string) error {
	return fmt.Errorf("%w: expected %s", ErrResponseTypeAssertFailed, expected)
}

// ErrorResponse is the normalized shape of every failed request: network
// errors, non-2xx answers and undecodable bodies alike.
type ErrorResponse struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Err     error           `json:"-"`
}

func (e *ErrorResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (status=%d): %v", e.Message, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (status=%d)", e.Message, e.Status)
}

func (e *ErrorResponse) Unwrap() error {
	return e.Err
}

func newErrorResponse(resp *http.Response, body []byte, cause error) *ErrorResponse {
	errResp := &ErrorResponse{
		Message: DefaultErrorMessage,
		Status:  DefaultErrorStatus,
		Err:     cause,
	}
	if resp == nil {
		return errResp
	}
	errResp.Status = resp.StatusCode
	if len(body) == 0 {
		return errResp
	}

	if json.Valid(body) {
		errResp.Data = body
		decoded, err := response.ErrorBody{}.Decode(body)
		if errBody, ok := decoded.(*response.ErrorBody); err == nil && ok && errBody.Error != "" {
			errResp.Message = errBody.Error
		}
	} else {
		errResp.Data, _ = json.Marshal(string(body))
	}
	return errResp
}

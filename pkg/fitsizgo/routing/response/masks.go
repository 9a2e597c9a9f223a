package response

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

type MaskListResponse struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// Decode accepts a bare array as well as a {"data": [...]} envelope. Any
// other shape is an empty list. Elements that aren't objects are dropped.
func (r MaskListResponse) Decode(data []byte) (any, error) {
	masks := make([]types.Mask, 0)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		respData := &MaskListResponse{}
		if err := json.Unmarshal(trimmed, respData); err != nil {
			return masks, err
		}
		trimmed = bytes.TrimSpace(respData.Data)
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return masks, nil
	}
	decoded, err := types.DecodeList[types.Mask](trimmed)
	if err != nil {
		return masks, err
	}
	return decoded, nil
}

type MaskResponse struct{}

func (r MaskResponse) Decode(data []byte) (any, error) {
	if isEmpty(data) {
		return (*types.Mask)(nil), nil
	}
	respData := &types.Mask{}
	return respData, json.Unmarshal(data, respData)
}

type InstructionsResponse struct{}

// Decode accepts a JSON string or a plain text body.
func (r InstructionsResponse) Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if isEmpty(trimmed) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", fmt.Errorf("failed to decode instructions: %w", err)
		}
		return text, nil
	}
	return string(trimmed), nil
}

func isEmpty(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

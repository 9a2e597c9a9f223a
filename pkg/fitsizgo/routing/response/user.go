package response

import (
	"encoding/json"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

type UserResponse struct{}

// Decode returns a nil user when the service answers with an empty body
// or null.
func (r UserResponse) Decode(data []byte) (any, error) {
	if isEmpty(data) {
		return (*types.User)(nil), nil
	}
	respData := &types.User{}
	return respData, json.Unmarshal(data, respData)
}

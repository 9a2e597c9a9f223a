package response

import "encoding/json"

// ErrorBody is the error envelope the fitsiz service uses for non-2xx
// answers.
type ErrorBody struct {
	Error string `json:"error,omitempty"`
}

func (r ErrorBody) Decode(data []byte) (any, error) {
	respData := &ErrorBody{}
	return respData, json.Unmarshal(data, respData)
}

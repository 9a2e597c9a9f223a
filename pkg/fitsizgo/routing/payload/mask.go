package payload

import "encoding/json"

type AddMaskPayload struct {
	MaskID int `json:"maskId"`
}

func (p AddMaskPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

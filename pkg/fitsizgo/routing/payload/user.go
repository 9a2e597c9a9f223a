package payload

import "encoding/json"

type RegisterPayload struct {
	TelegramID string `json:"telegramId"`
	FirstName  string `json:"firstName"`
}

func (p RegisterPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// UpdateProfilePayload only sends the fields that are set.
type UpdateProfilePayload struct {
	TelegramID string  `json:"telegramId"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Quiz       *bool   `json:"quiz,omitempty"`
	Add        *bool   `json:"add,omitempty"`
}

func (p UpdateProfilePayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

package types

import (
	"encoding/json"
	"maps"
)

const DefaultDisplayName = "User"

// Identity is the Telegram user descriptor handed to the Mini App before
// the fitsiz service has confirmed anything about it.
type Identity struct {
	ID           ID     `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`

	fields map[string]json.RawMessage
}

type plainIdentity Identity

func (i *Identity) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, (*plainIdentity)(i))
	if err != nil {
		return err
	}
	i.fields = fields
	return nil
}

func (i Identity) MarshalJSON() ([]byte, error) {
	fields, err := i.Fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Fields returns the identity as a flat JSON object. Keys the host sent
// that Identity has no field for are kept.
func (i Identity) Fields() (map[string]json.RawMessage, error) {
	return objectFields(i.fields, (*plainIdentity)(&i))
}

// DisplayName is the best-effort name sent on registration.
func (i *Identity) DisplayName() string {
	switch {
	case i.FirstName != "":
		return i.FirstName
	case i.Username != "":
		return i.Username
	default:
		return DefaultDisplayName
	}
}

func objectFields(decoded map[string]json.RawMessage, known any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	var current map[string]json.RawMessage
	if err = json.Unmarshal(data, &current); err != nil {
		return nil, err
	}
	out := maps.Clone(decoded)
	if out == nil {
		out = make(map[string]json.RawMessage, len(current))
	}
	maps.Copy(out, current)
	return out, nil
}

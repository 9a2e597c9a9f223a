package types

type Video struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	Duration     string `json:"duration,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type plainVideo Video

func (v *Video) UnmarshalJSON(data []byte) error {
	_, err := decodeObject(data, (*plainVideo)(v))
	return err
}

package types

type ExtraField struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Feature struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID        int     `json:"id"`
	UserName  string  `json:"userName"`
	Rating    float64 `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// Mask is a catalog entry. The service leaves most attributes null for
// masks that haven't been fully described yet.
type Mask struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Instructions *string      `json:"instructions"`
	ImageURL     *string      `json:"imageUrl"`
	Price        *float64     `json:"price"`
	Weight       *float64     `json:"weight"`
	ViewArea     *string      `json:"viewArea"`
	Sensors      *int         `json:"sensors"`
	Power        *string      `json:"power"`
	ShadeRange   *string      `json:"shadeRange"`
	Material     *string      `json:"material"`
	Description  *string      `json:"description"`
	Link         *string      `json:"link"`
	Installment  *string      `json:"installment"`
	Size         *string      `json:"size"`
	Days         *int         `json:"days"`
	Features     []Feature    `json:"features"`
	Reviews      []Review     `json:"reviews"`
	ExtraFields  []ExtraField `json:"ExtraField"`
}

type plainMask Mask

func (m *Mask) UnmarshalJSON(data []byte) error {
	_, err := decodeObject(data, (*plainMask)(m))
	return err
}

// AverageRating is zero when the mask has no reviews.
func (m *Mask) AverageRating() float64 {
	if len(m.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(m.Reviews))
}

func (m *Mask) ExtraField(key string) (string, bool) {
	for _, f := range m.ExtraFields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

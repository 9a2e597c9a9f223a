package query

import (
	"github.com/google/go-querystring/query"
)

type CatalogQuery struct {
	Name string `url:"name"`
}

func (q *CatalogQuery) Encode() ([]byte, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, err
	}
	return []byte(values.Encode()), nil
}

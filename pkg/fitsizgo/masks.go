package fitsizgo

import (
	"context"
	"strconv"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/query"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

func (c *Client) GetMasks(ctx context.Context) ([]types.Mask, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.MasksURL.With(), nil, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[[]types.Mask](respData, "[]types.Mask")
}

func (c *Client) GetMaskDetails(ctx context.Context, id int) (*types.Mask, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.MaskDetailsURL.With(strconv.Itoa(id)), nil, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[*types.Mask](respData, "*types.Mask")
}

func (c *Client) GetMaskInstructions(ctx context.Context, id int) (string, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.MaskInstructionsURL.With(strconv.Itoa(id)), nil, nil)
	if err != nil {
		return "", err
	}
	return assertResponse[string](respData, "string")
}

// GetCatalog searches the catalog by mask name.
func (c *Client) GetCatalog(ctx context.Context, name string) ([]types.Mask, error) {
	catalogQuery := query.CatalogQuery{
		Name: name,
	}
	_, respData, err := c.MakeRoutingRequest(ctx, routing.CatalogURL.With(), nil, &catalogQuery)
	if err != nil {
		return nil, err
	}
	return assertResponse[[]types.Mask](respData, "[]types.Mask")
}

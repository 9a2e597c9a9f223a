package fitsizgo

import (
	"context"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

func (c *Client) GetVideos(ctx context.Context) ([]types.Video, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.VideosURL.With(), nil, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[[]types.Video](respData, "[]types.Video")
}

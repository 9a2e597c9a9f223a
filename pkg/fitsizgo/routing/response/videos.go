package response

import (
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

type VideoListResponse struct{}

func (r VideoListResponse) Decode(data []byte) (any, error) {
	videos := make([]types.Video, 0)
	if isEmpty(data) {
		return videos, nil
	}
	decoded, err := types.DecodeList[types.Video](data)
	if err != nil {
		return videos, err
	}
	return decoded, nil
}

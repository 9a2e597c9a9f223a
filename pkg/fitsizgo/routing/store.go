package routing

import (
	"net/http"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/response"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

type PayloadDataInterface interface {
	Encode() ([]byte, error)
}

type ResponseDataInterface interface {
	Decode(data []byte) (any, error)
}

type RequestEndpointInfo struct {
	Method             string
	HeaderOpts         types.HeaderOpts
	ContentType        types.ContentType
	ResponseDefinition ResponseDataInterface
}

var jsonHeaders = types.HeaderOpts{
	WithRequestID: true,
	Accept:        types.ContentTypeJSON,
}

var RequestStoreDefinition = map[RequestEndpointURL]RequestEndpointInfo{
	UserMasksURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.MaskListResponse{},
	},
	RegisterURL: {
		Method:             http.MethodPost,
		ContentType:        types.ContentTypeJSON,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.UserResponse{},
	},
	UserURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.UserResponse{},
	},
	MasksURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.MaskListResponse{},
	},
	MaskDetailsURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.MaskResponse{},
	},
	MaskInstructionsURL: {
		Method:      http.MethodGet,
		ContentType: types.ContentTypeNone,
		HeaderOpts: types.HeaderOpts{
			WithRequestID: true,
			Extra: map[string]string{
				"Accept": string(types.ContentTypeJSON) + ", " + string(types.ContentTypePlainText),
			},
		},
		ResponseDefinition: response.InstructionsResponse{},
	},
	CatalogURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.MaskListResponse{},
	},
	UserAddMaskURL: {
		Method:      http.MethodPost,
		ContentType: types.ContentTypeJSON,
		HeaderOpts:  jsonHeaders,
	},
	VideosURL: {
		Method:             http.MethodGet,
		ContentType:        types.ContentTypeNone,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.VideoListResponse{},
	},
	ProfileURL: {
		Method:             http.MethodPost,
		ContentType:        types.ContentTypeJSON,
		HeaderOpts:         jsonHeaders,
		ResponseDefinition: response.UserResponse{},
	},
}

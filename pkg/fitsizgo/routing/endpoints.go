package routing

import (
	"fmt"
	"net/url"
)

const DefaultBaseURL = "https://fitsiz-server.ru/api"

// RequestEndpointURL is a path template relative to the service base URL.
// Path parameters are written as %s.
type RequestEndpointURL string

const (
	UserMasksURL        RequestEndpointURL = "/user/%s/masks"
	RegisterURL         RequestEndpointURL = "/register"
	UserURL             RequestEndpointURL = "/user/%s"
	MasksURL            RequestEndpointURL = "/masks"
	MaskDetailsURL      RequestEndpointURL = "/masks/%s"
	MaskInstructionsURL RequestEndpointURL = "/masks/%s/instructions"
	CatalogURL          RequestEndpointURL = "/catalog"
	UserAddMaskURL      RequestEndpointURL = "/user/%s/add-mask"
	VideosURL           RequestEndpointURL = "/videos"
	ProfileURL          RequestEndpointURL = "/profile"
)

type RequestPath struct {
	Endpoint RequestEndpointURL
	Path     string
}

// With fills the endpoint's path parameters, escaping each of them.
func (e RequestEndpointURL) With(params ...string) RequestPath {
	if len(params) == 0 {
		return RequestPath{Endpoint: e, Path: string(e)}
	}
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = url.PathEscape(p)
	}
	return RequestPath{Endpoint: e, Path: fmt.Sprintf(string(e), args...)}
}

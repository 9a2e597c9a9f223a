package types

type ContentType string

const (
	ContentTypeNone      ContentType = ""
	ContentTypeJSON      ContentType = "application/json"
	ContentTypePlainText ContentType = "text/plain"
)

type HeaderOpts struct {
	WithRequestID bool
	Accept        ContentType
	Extra         map[string]string
}

// Package webapp models the Telegram Mini App host runtime: the
// Telegram.WebApp object injected into the page and the init data it
// hands over, either directly or through the URL fragment.
package webapp

// WebApp is the part of the host integration object the Mini App uses.
type WebApp interface {
	Ready()
	IsVersionAtLeast(version string) bool
	RequestFullscreen()
	SetHeaderColor(color string)
	Expand()
	Version() string
	InitDataUnsafe() *InitData
}

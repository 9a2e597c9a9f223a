package webapp

import (
	"errors"
	"sync"
)

// Static is an in-process WebApp with a fixed version and init data. It
// records every handshake and presentation call.
type Static struct {
	HostVersion string
	InitData    *InitData

	lock  sync.Mutex
	calls []string
}

var _ WebApp = (*Static)(nil)

// NewStaticFromFragment builds a host whose init data comes from a URL
// fragment. A fragment without init data gives a host without a user.
func NewStaticFromFragment(version string, fragment string) (*Static, error) {
	initData, err := ParseFragment(fragment)
	if errors.Is(err, ErrNoInitData) {
		initData, err = &InitData{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Static{HostVersion: version, InitData: initData}, nil
}

func (s *Static) record(call string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.calls = append(s.calls, call)
}

func (s *Static) Ready() {
	s.record("ready")
}

func (s *Static) IsVersionAtLeast(version string) bool {
	return VersionAtLeast(s.HostVersion, version)
}

func (s *Static) RequestFullscreen() {
	s.record("requestFullscreen")
}

func (s *Static) SetHeaderColor(color string) {
	s.record("setHeaderColor:" + color)
}

func (s *Static) Expand() {
	s.record("expand")
}

func (s *Static) Version() string {
	return s.HostVersion
}

func (s *Static) InitDataUnsafe() *InitData {
	return s.InitData
}

func (s *Static) Calls() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.calls...)
}

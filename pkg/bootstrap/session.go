package bootstrap

import (
	"errors"
	"sync"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

var ErrSessionSet = errors.New("session user is already set")

// Session holds the effective user of the current launch. It is written
// once by the bootstrap and only read afterwards.
type Session struct {
	lock sync.RWMutex
	user *types.User
}

func (s *Session) SetUser(user *types.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.user != nil {
		return ErrSessionSet
	}
	s.user = user
	return nil
}

func (s *Session) User() *types.User {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user
}

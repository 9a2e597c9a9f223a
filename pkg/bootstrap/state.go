package bootstrap

import (
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

type State int

const (
	StateNoIdentity State = iota
	StateIdentityFound
	StateRegistered
	StateRouted
)

func (s State) String() string {
	switch s {
	case StateNoIdentity:
		return "NO_IDENTITY"
	case StateIdentityFound:
		return "IDENTITY_FOUND"
	case StateRegistered:
		return "REGISTERED"
	case StateRouted:
		return "ROUTED"
	default:
		return "UNKNOWN"
	}
}

type Route string

const (
	RouteWelcome Route = "/welcome"
	RouteQuiz    Route = "/quiz"
)

// RouteFor sends users who finished onboarding to the welcome page and
// everyone else to the quiz.
func RouteFor(user *types.User) Route {
	if user.OnboardingComplete() {
		return RouteWelcome
	}
	return RouteQuiz
}

type Navigator interface {
	Navigate(route Route)
}

type NavigatorFunc func(route Route)

func (f NavigatorFunc) Navigate(route Route) {
	f(route)
}

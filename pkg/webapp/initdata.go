package webapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

const FragmentParam = "tgWebAppData"

var ErrNoInitData = errors.New("no init data in URL fragment")

// InitData is the launch payload Telegram passes to the Mini App.
type InitData struct {
	QueryID      string          `json:"query_id,omitempty"`
	User         *types.Identity `json:"user,omitempty"`
	AuthDate     time.Time       `json:"auth_date,omitempty"`
	Hash         string          `json:"hash,omitempty"`
	StartParam   string          `json:"start_param,omitempty"`
	ChatType     string          `json:"chat_type,omitempty"`
	ChatInstance string          `json:"chat_instance,omitempty"`
}

// ParseFragment extracts the init data from a page URL fragment such as
// "#tgWebAppData=query_id%3D...%26user%3D...&tgWebAppVersion=8.0".
// It returns ErrNoInitData when the fragment doesn't carry any.
func ParseFragment(fragment string) (*InitData, error) {
	params, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	raw := params.Get(FragmentParam)
	if raw == "" {
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL fragment: %w", err)
		}
		return nil, ErrNoInitData
	}
	// Some clients encode the payload twice.
	if !strings.Contains(raw, "=") {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	return ParseInitData(raw)
}

// ParseInitData parses the init data query string itself.
func ParseInitData(raw string) (*InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse init data: %w", err)
	}

	initData := &InitData{
		QueryID:      values.Get("query_id"),
		Hash:         values.Get("hash"),
		StartParam:   values.Get("start_param"),
		ChatType:     values.Get("chat_type"),
		ChatInstance: values.Get("chat_instance"),
	}

	if authDate := values.Get("auth_date"); authDate != "" {
		seconds, err := strconv.ParseInt(authDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid auth_date %q: %w", authDate, err)
		}
		initData.AuthDate = time.Unix(seconds, 0).UTC()
	}

	if userParam := strings.TrimSpace(values.Get("user")); userParam != "" {
		if !strings.HasPrefix(userParam, "{") {
			if unescaped, err := url.PathUnescape(userParam); err == nil {
				userParam = unescaped
			}
		}
		identity := &types.Identity{}
		if err = json.Unmarshal([]byte(userParam), identity); err != nil {
			return nil, fmt.Errorf("failed to decode init data user: %w", err)
		}
		if identity.ID == "" {
			return nil, fmt.Errorf("init data user has no id")
		}
		initData.User = identity
	}

	return initData, nil
}

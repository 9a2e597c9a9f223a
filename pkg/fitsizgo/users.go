package fitsizgo

import (
	"context"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/payload"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

// RegisterUser creates the account for a Telegram user. The service
// answers with the stored record, which may be nil when it has nothing to
// return.
func (c *Client) RegisterUser(ctx context.Context, telegramID string, firstName string) (*types.User, error) {
	registerPayload := payload.RegisterPayload{
		TelegramID: telegramID,
		FirstName:  firstName,
	}
	_, respData, err := c.MakeRoutingRequest(ctx, routing.RegisterURL.With(), registerPayload, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[*types.User](respData, "*types.User")
}

func (c *Client) GetUser(ctx context.Context, telegramID string) (*types.User, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.UserURL.With(telegramID), nil, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[*types.User](respData, "*types.User")
}

// GetUserMasks lists the masks the user has added to their collection.
func (c *Client) GetUserMasks(ctx context.Context, telegramID string) ([]types.Mask, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.UserMasksURL.With(telegramID), nil, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[[]types.Mask](respData, "[]types.Mask")
}

func (c *Client) AddUserMask(ctx context.Context, telegramID string, maskID int) error {
	addMaskPayload := payload.AddMaskPayload{
		MaskID: maskID,
	}
	_, _, err := c.MakeRoutingRequest(ctx, routing.UserAddMaskURL.With(telegramID), addMaskPayload, nil)
	return err
}

// UpdateProfile only changes the fields set in p.
func (c *Client) UpdateProfile(ctx context.Context, p payload.UpdateProfilePayload) (*types.User, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.ProfileURL.With(), p, nil)
	if err != nil {
		return nil, err
	}
	return assertResponse[*types.User](respData, "*types.User")
}

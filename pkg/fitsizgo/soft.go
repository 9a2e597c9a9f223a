package fitsizgo

import (
	"context"
	"errors"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/payload"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

// SoftClient wraps Client with the Mini App's fail-soft contract: no
// operation returns an error. Failures become an empty list, nil, "" or
// false, and are logged only when logFailures is set.
type SoftClient struct {
	client      *Client
	logFailures bool
}

func (c *Client) Soft(logFailures bool) *SoftClient {
	return &SoftClient{
		client:      c,
		logFailures: logFailures,
	}
}

func (s *SoftClient) Client() *Client {
	return s.client
}

func (s *SoftClient) failed(operation string, err error) {
	if !s.logFailures {
		return
	}
	evt := s.client.Logger.Error().Err(err).Str("operation", operation)
	var errResp *ErrorResponse
	if errors.As(err, &errResp) {
		evt = evt.Int("status", errResp.Status).Str("message", errResp.Message)
		if len(errResp.Data) > 0 {
			evt = evt.RawJSON("data", errResp.Data)
		}
	}
	evt.Msg("API request failed")
}

func (s *SoftClient) GetUserMasks(ctx context.Context, telegramID string) []types.Mask {
	masks, err := s.client.GetUserMasks(ctx, telegramID)
	if err != nil {
		s.failed("getUserMasks", err)
		return []types.Mask{}
	}
	return masks
}

func (s *SoftClient) RegisterUser(ctx context.Context, telegramID string, firstName string) *types.User {
	user, err := s.client.RegisterUser(ctx, telegramID, firstName)
	if err != nil {
		s.failed("registerUser", err)
		return nil
	}
	return user
}

func (s *SoftClient) GetUser(ctx context.Context, telegramID string) *types.User {
	user, err := s.client.GetUser(ctx, telegramID)
	if err != nil {
		s.failed("getUser", err)
		return nil
	}
	return user
}

func (s *SoftClient) GetMasks(ctx context.Context) []types.Mask {
	masks, err := s.client.GetMasks(ctx)
	if err != nil {
		s.failed("getMasks", err)
		return []types.Mask{}
	}
	return masks
}

func (s *SoftClient) GetMaskDetails(ctx context.Context, id int) *types.Mask {
	mask, err := s.client.GetMaskDetails(ctx, id)
	if err != nil {
		s.failed("getMaskDetails", err)
		return nil
	}
	return mask
}

func (s *SoftClient) GetMaskInstructions(ctx context.Context, id int) string {
	instructions, err := s.client.GetMaskInstructions(ctx, id)
	if err != nil {
		s.failed("getMaskInstructions", err)
		return ""
	}
	return instructions
}

func (s *SoftClient) GetCatalog(ctx context.Context, name string) []types.Mask {
	masks, err := s.client.GetCatalog(ctx, name)
	if err != nil {
		s.failed("getCatalog", err)
		return []types.Mask{}
	}
	return masks
}

func (s *SoftClient) AddUserMask(ctx context.Context, telegramID string, maskID int) bool {
	if err := s.client.AddUserMask(ctx, telegramID, maskID); err != nil {
		s.failed("addUserMask", err)
		return false
	}
	return true
}

func (s *SoftClient) GetVideos(ctx context.Context) []types.Video {
	videos, err := s.client.GetVideos(ctx)
	if err != nil {
		s.failed("getVideos", err)
		return []types.Video{}
	}
	return videos
}

func (s *SoftClient) UpdateProfile(ctx context.Context, p payload.UpdateProfilePayload) *types.User {
	user, err := s.client.UpdateProfile(ctx, p)
	if err != nil {
		s.failed("updateProfile", err)
		return nil
	}
	return user
}

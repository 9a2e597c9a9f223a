package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"go.mau.fi/util/ptr"

	"github.com/fitsiz/miniapp/pkg/boundary"
	"github.com/fitsiz/miniapp/pkg/config"
	"github.com/fitsiz/miniapp/pkg/fitsizgo"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing/payload"
)

var ErrUsage = errors.New("invalid usage")

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type app struct {
	opts   *options
	cfg    *config.Config
	log    zerolog.Logger
	client *fitsizgo.Client
	soft   *fitsizgo.SoftClient
	out    io.Writer
	errOut io.Writer
}

// run executes the command under the boundary and returns the exit code.
// Usage errors are reported even when the boundary suppresses failures.
func (a *app) run(ctx context.Context, guard *boundary.Boundary, command string, args []string) int {
	var usageErr error
	err := guard.Run(ctx, command, func(ctx context.Context) error {
		err := a.dispatch(ctx, command, args)
		if errors.Is(err, ErrUsage) {
			usageErr = err
			return nil
		}
		return err
	})
	switch {
	case usageErr != nil:
		fmt.Fprintln(a.errOut, usageErr)
		return exitUsage
	case err != nil:
		return exitFailure
	default:
		return exitOK
	}
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		result, err := a.login(ctx)
		if err != nil {
			return err
		}
		return a.print(map[string]any{
			"source":   result.Source,
			"route":    result.Route,
			"degraded": result.Degraded,
			"user":     result.User,
		})
	case "masks":
		return a.print(a.soft.GetMasks(ctx))
	case "mask":
		id, err := intArg(args, "mask <id>")
		if err != nil {
			return err
		}
		return a.print(a.soft.GetMaskDetails(ctx, id))
	case "instructions":
		id, err := intArg(args, "instructions <id>")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, a.soft.GetMaskInstructions(ctx, id))
		return err
	case "catalog":
		if len(args) != 1 {
			return fmt.Errorf("%w: catalog <name>", ErrUsage)
		}
		return a.print(a.soft.GetCatalog(ctx, args[0]))
	case "videos":
		return a.print(a.soft.GetVideos(ctx))
	case "my-masks":
		telegramID, err := a.telegramID(ctx)
		if err != nil {
			return err
		}
		return a.print(a.soft.GetUserMasks(ctx, telegramID))
	case "add-mask":
		id, err := intArg(args, "add-mask <id>")
		if err != nil {
			return err
		}
		telegramID, err := a.telegramID(ctx)
		if err != nil {
			return err
		}
		return a.print(map[string]bool{"added": a.soft.AddUserMask(ctx, telegramID, id)})
	case "profile":
		update, err := parseProfileFlags(args)
		if err != nil {
			return err
		}
		if update.TelegramID, err = a.telegramID(ctx); err != nil {
			return err
		}
		return a.print(a.soft.UpdateProfile(ctx, *update))
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrUsage, usage, err)
	}
	return id, nil
}

// parseProfileFlags only sets the fields whose flags were passed.
func parseProfileFlags(args []string) (*payload.UpdateProfilePayload, error) {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	phone := fs.String("phone", "", "phone number")
	email := fs.String("email", "", "email address")
	quiz := fs.Bool("quiz", false, "whether the onboarding quiz is done")
	add := fs.Bool("add", false, "whether the user added a mask")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	update := &payload.UpdateProfilePayload{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "phone":
			update.Phone = ptr.Ptr(*phone)
		case "email":
			update.Email = ptr.Ptr(*email)
		case "quiz":
			update.Quiz = ptr.Ptr(*quiz)
		case "add":
			update.Add = ptr.Ptr(*add)
		}
	})
	return update, nil
}

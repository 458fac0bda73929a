package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/share"
)

// shareService returns the sharing service and a close func. Without a Redis
// url the state lives in memory and is lost when the command exits.
func (c *cli) shareService() (*share.Service, func(), error) {
	var (
		store   share.Store
		closeFn = func() {}
	)
	if c.cfg.RedisURL != "" {
		redisStore, err := share.NewRedisStore(c.cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store = redisStore
		closeFn = func() { _ = redisStore.Close() }
	} else {
		c.logger.Warn("no redis url configured, share state is not persisted")
		store = share.NewMemoryStore()
	}

	svc, err := share.NewService(store, c.cfg.Origin,
		share.WithNotifier(c.notifier()),
		share.WithLogger(c.logger.Named("share")),
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func newShareCmd(c *cli) *cobra.Command {
	withService := func(run func(ctx context.Context, svc *share.Service, formID string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			svc, closeFn, err := c.shareService()
			if err != nil {
				return err
			}
			defer closeFn()
			return run(cmd.Context(), svc, file.FormID)
		}
	}

	status := func(ctx context.Context, svc *share.Service, formID string) error {
		state, err := svc.State(ctx, formID)
		if err != nil {
			return err
		}
		link, err := svc.Link(formID)
		if err != nil {
			return err
		}
		if state.Public {
			fmt.Fprintf(c.out, "Form %s is public\n%s\n", formID, link)
			return nil
		}
		fmt.Fprintf(c.out, "Form %s is private\nPublish it to share %s\n", formID, link)
		return nil
	}

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Show whether the form is public and its shareable link",
		Args:  cobra.NoArgs,
		RunE:  withService(status),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "publish",
			Short: "Make the form public",
			Args:  cobra.NoArgs,
			RunE: withService(func(ctx context.Context, svc *share.Service, formID string) error {
				if _, err := svc.Publish(ctx, formID); err != nil {
					return err
				}
				return status(ctx, svc, formID)
			}),
		},
		&cobra.Command{
			Use:   "unpublish",
			Short: "Make the form private",
			Args:  cobra.NoArgs,
			RunE: withService(func(ctx context.Context, svc *share.Service, formID string) error {
				_, err := svc.Unpublish(ctx, formID)
				return err
			}),
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Flip the form between public and private",
			Args:  cobra.NoArgs,
			RunE: withService(func(ctx context.Context, svc *share.Service, formID string) error {
				if _, err := svc.Toggle(ctx, formID); err != nil {
					return err
				}
				return status(ctx, svc, formID)
			}),
		},
		&cobra.Command{
			Use:   "link",
			Short: "Print the shareable link of a public form",
			Args:  cobra.NoArgs,
			RunE: withService(func(ctx context.Context, svc *share.Service, formID string) error {
				link, err := svc.ShareLink(ctx, formID)
				if errors.Is(err, share.ErrNotPublic) {
					return fmt.Errorf("form %s is private, run `formbuilder share publish` first", formID)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, link)
				return nil
			}),
		},
	)
	return cmd
}

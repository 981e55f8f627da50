package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/events"
	"github.com/peermall/peerstore/internal/keyspace"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/observer"
	"github.com/peermall/peerstore/internal/store"
)

func init() {
	var communityID string
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the posts collection and print each new snapshot",
		Long: "Runs a feed over the posts key and prints the full snapshot as JSON " +
			"whenever another handle writes it or this process mutates it. " +
			"Interrupt to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			feed := observer.NewFeed(med, bus, keyspace.PostsKey,
				func(ctx context.Context) ([]*model.Post, error) {
					return st.Posts().List(ctx, store.PostQuery{CommunityID: communityID})
				},
				events.KindPostSaved, events.KindPostRemoved,
			)

			done := make(chan error, 1)
			go func() { done <- feed.Run(ctx) }()

			for {
				select {
				case <-feed.Updates():
					snap := feed.Snapshot()
					fmt.Fprintf(os.Stderr, "-- %d post(s), state=%s\n", len(snap), feed.State())
					if err := printJSON(snap); err != nil {
						return err
					}
				case err := <-done:
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
			}
		},
	}
	watchCmd.Flags().StringVarP(&communityID, "community", "c", "", "Community ID filter")
	rootCmd.AddCommand(watchCmd)
}

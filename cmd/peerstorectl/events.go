package main

import (
	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/core/calendar"
)

func init() {
	eventsCmd := &cobra.Command{Use: "events", Short: "Community map event operations"}

	var communityID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a community's events",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := calendar.NewService(st)
			evts, err := svc.ListEvents(cmd.Context(), communityID)
			if err != nil {
				return err
			}
			return printJSON(evts)
		},
	}
	listCmd.Flags().StringVarP(&communityID, "community", "c", "", "Community ID filter")
	eventsCmd.AddCommand(listCmd)

	var createCommunity, title, description, start, end string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := calendar.NewService(st)
			e, err := svc.CreateEvent(cmd.Context(), calendar.CreateEventRequest{
				CommunityID: createCommunity,
				Title:       title,
				Description: description,
				StartDate:   start,
				EndDate:     end,
			})
			if err != nil {
				return err
			}
			return printJSON(e)
		},
	}
	createCmd.Flags().StringVarP(&createCommunity, "community", "c", "", "Community ID (required)")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Event title (required)")
	createCmd.Flags().StringVar(&description, "description", "", "Event description")
	createCmd.Flags().StringVar(&start, "start", "", "Start date, 2006-01-02 or RFC 3339 (required)")
	createCmd.Flags().StringVar(&end, "end", "", "End date, 2006-01-02 or RFC 3339 (required)")
	_ = createCmd.MarkFlagRequired("community")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
	eventsCmd.AddCommand(createCmd)

	removeCmd := &cobra.Command{
		Use:   "remove EVENT_ID",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := calendar.NewService(st)
			return svc.RemoveEvent(cmd.Context(), args[0])
		},
	}
	eventsCmd.AddCommand(removeCmd)

	rootCmd.AddCommand(eventsCmd)
}

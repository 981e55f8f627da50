package main

import (
	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/core/board"
)

func init() {
	channelsCmd := &cobra.Command{Use: "channels", Short: "Channel operations"}

	var communityID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a community's channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			channels, err := svc.ListChannels(cmd.Context(), communityID)
			if err != nil {
				return err
			}
			return printJSON(channels)
		},
	}
	listCmd.Flags().StringVarP(&communityID, "community", "c", "", "Community ID filter")
	channelsCmd.AddCommand(listCmd)

	var createCommunity, name, icon, color, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			req := board.CreateChannelRequest{
				CommunityID: createCommunity,
				Name:        name,
				Color:       color,
				Description: description,
			}
			if icon != "" {
				req.Icon = &icon
			}
			ch, err := svc.CreateChannel(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(ch)
		},
	}
	createCmd.Flags().StringVarP(&createCommunity, "community", "c", "", "Community ID (required)")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Channel name (required)")
	createCmd.Flags().StringVar(&icon, "icon", "", "Icon identifier")
	createCmd.Flags().StringVar(&color, "color", "#3b82f6", "Accent color as #rrggbb")
	createCmd.Flags().StringVar(&description, "description", "", "Channel description")
	_ = createCmd.MarkFlagRequired("community")
	_ = createCmd.MarkFlagRequired("name")
	channelsCmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete CHANNEL_ID",
		Short: "Delete a channel (posts keep their dangling reference)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			return svc.DeleteChannel(cmd.Context(), args[0])
		},
	}
	channelsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(channelsCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/core/roster"
)

func init() {
	membersCmd := &cobra.Command{Use: "members", Short: "Community roster operations"}

	var communityID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a community's members",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := roster.NewService(st)
			members, err := svc.ListMembers(cmd.Context(), communityID)
			if err != nil {
				return err
			}
			return printJSON(members)
		},
	}
	listCmd.Flags().StringVarP(&communityID, "community", "c", "", "Community ID filter")
	membersCmd.AddCommand(listCmd)

	var addCommunity, name, role string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := roster.NewService(st)
			m, err := svc.AddMember(cmd.Context(), roster.AddMemberRequest{
				CommunityID: addCommunity,
				Name:        name,
				Role:        role,
			})
			if err != nil {
				return err
			}
			return printJSON(m)
		},
	}
	addCmd.Flags().StringVarP(&addCommunity, "community", "c", "", "Community ID (required)")
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Member name (required)")
	addCmd.Flags().StringVarP(&role, "role", "r", "", "Role label (defaults to member)")
	_ = addCmd.MarkFlagRequired("community")
	_ = addCmd.MarkFlagRequired("name")
	membersCmd.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove MEMBER_ID",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := roster.NewService(st)
			return svc.RemoveMember(cmd.Context(), args[0])
		},
	}
	membersCmd.AddCommand(removeCmd)

	var active bool
	activeCmd := &cobra.Command{
		Use:   "set-active MEMBER_ID",
		Short: "Toggle a member's active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := roster.NewService(st)
			m, err := svc.SetActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}
			return printJSON(m)
		},
	}
	activeCmd.Flags().BoolVar(&active, "active", true, "Active state to set")
	membersCmd.AddCommand(activeCmd)

	rootCmd.AddCommand(membersCmd)
}

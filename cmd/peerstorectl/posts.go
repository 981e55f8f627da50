package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/core/board"
)

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Board post operations"}

	var communityID, channelID string
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List posts in board order, notices first then newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			posts, err := svc.ListPosts(cmd.Context(), communityID, channelID)
			if err != nil {
				return err
			}
			board.SortForBoard(posts)
			if limit > 0 && limit < len(posts) {
				posts = posts[:limit]
			}
			return printJSON(posts)
		},
	}
	listCmd.Flags().StringVarP(&communityID, "community", "c", "", "Community ID filter")
	listCmd.Flags().StringVar(&channelID, "channel", "", "Channel ID filter")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max posts to print (0 = all)")
	postsCmd.AddCommand(listCmd)

	var createCommunity, createChannel, title, author, body, tags string
	var notice bool
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			post, err := svc.CreatePost(cmd.Context(), board.CreatePostRequest{
				CommunityID: createCommunity,
				ChannelID:   createChannel,
				Title:       title,
				Author:      author,
				Body:        body,
				Tags:        splitCSV(tags),
				IsNotice:    notice,
			})
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	createCmd.Flags().StringVarP(&createCommunity, "community", "c", "", "Community ID (required)")
	createCmd.Flags().StringVar(&createChannel, "channel", "", "Channel ID")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Post title (required)")
	createCmd.Flags().StringVarP(&author, "author", "a", "", "Author name (required)")
	createCmd.Flags().StringVar(&body, "body", "", "Post body")
	createCmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	createCmd.Flags().BoolVar(&notice, "notice", false, "Pin as notice")
	_ = createCmd.MarkFlagRequired("community")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("author")
	postsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get POST_ID",
		Short: "Get a post by ID (counts a view)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			post, err := svc.ViewPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	postsCmd.AddCommand(getCmd)

	var editTitle, editBody, editTags string
	var editNotice bool
	editCmd := &cobra.Command{
		Use:   "edit POST_ID",
		Short: "Replace a post's title, body and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			post, err := svc.EditPost(cmd.Context(), board.EditPostRequest{
				ID:       args[0],
				Title:    editTitle,
				Body:     editBody,
				Tags:     splitCSV(editTags),
				IsNotice: editNotice,
			})
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title (required)")
	editCmd.Flags().StringVar(&editBody, "body", "", "New body")
	editCmd.Flags().StringVar(&editTags, "tags", "", "Comma-separated tags")
	editCmd.Flags().BoolVar(&editNotice, "notice", false, "Pin as notice")
	_ = editCmd.MarkFlagRequired("title")
	postsCmd.AddCommand(editCmd)

	likeCmd := &cobra.Command{
		Use:   "like POST_ID",
		Short: "Increment a post's like counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			post, err := svc.LikePost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	postsCmd.AddCommand(likeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete POST_ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := board.NewService(st)
			return svc.DeletePost(cmd.Context(), args[0])
		},
	}
	postsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(postsCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/product"
)

func init() {
	communitiesCmd := &cobra.Command{Use: "communities", Short: "Community record operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List locally cached communities",
		RunE: func(cmd *cobra.Command, args []string) error {
			communities, err := st.Communities().List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(communities)
		},
	}
	communitiesCmd.AddCommand(listCmd)

	var remote bool
	getCmd := &cobra.Command{
		Use:   "get COMMUNITY_ID",
		Short: "Get a community, locally or from the product service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				c, err := product.NewClient(cfg.ProductAPIURL).GetCommunity(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(c)
			}
			c, err := st.Communities().FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	}
	getCmd.Flags().BoolVar(&remote, "remote", false, "Fetch from the product service instead of the local cache")
	communitiesCmd.AddCommand(getCmd)

	var id, name, description string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a cached community record",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.Communities().Save(cmd.Context(), &model.Community{
				ID:          id,
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	}
	saveCmd.Flags().StringVar(&id, "id", "", "Community ID (required)")
	saveCmd.Flags().StringVarP(&name, "name", "n", "", "Community name (required)")
	saveCmd.Flags().StringVar(&description, "description", "", "Community description")
	_ = saveCmd.MarkFlagRequired("id")
	_ = saveCmd.MarkFlagRequired("name")
	communitiesCmd.AddCommand(saveCmd)

	productsCmd := &cobra.Command{
		Use:   "products COMMUNITY_ID",
		Short: "List a community's mall products from the product service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := product.NewClient(cfg.ProductAPIURL).ListProducts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}
	communitiesCmd.AddCommand(productsCmd)

	rootCmd.AddCommand(communitiesCmd)
}

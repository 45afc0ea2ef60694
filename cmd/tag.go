package cmd

import (
	"fmt"

	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/services"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the tag vocabulary",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>...",
	Short: "Create tags that questions can be labelled with",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		defer e.close()

		tagService := services.NewTagService(e.store, helper.NewValidator())
		for _, name := range args {
			tag, err := tagService.CreateTag(cmd.Context(), models.CreateTagRequest{Name: name})
			if err != nil {
				return fmt.Errorf("create tag %q: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created tag %s (id %d)\n", tag.Name, tag.ID)
		}
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagCreateCmd)
}

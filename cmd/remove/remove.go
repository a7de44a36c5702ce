package remove

import (
	"github.com/spf13/cobra"

	"github.com/imagevault/imagevault/internal/imagestore"
	"github.com/imagevault/imagevault/internal/runtime"
)

// Command creates the remove command for erasing stored images of an owner.
func Command(ctx *runtime.Context) *cobra.Command {
	var (
		ownerType  string
		ownerID    uint
		categories []string
		names      []string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove stored images from an owner record",
		Long:  `Erase stored variants and metadata rows for an owner, optionally narrowed to categories or image names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := imagestore.OwnerRef{Type: ownerType, ID: ownerID}

			switch {
			case len(names) > 0:
				return ctx.Manager.DeleteByName(owner, categories, names)
			case len(categories) > 0:
				return ctx.Manager.DeleteByCategories(owner, categories)
			default:
				return ctx.Manager.DeleteAll(owner)
			}
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", "", "Owner model name, for example user or post")
	cmd.Flags().UintVar(&ownerID, "owner-id", 0, "Primary key of the owner record")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Limit removal to these categories")
	cmd.Flags().StringSliceVar(&names, "name", nil, "Remove only images with these stored names")
	_ = cmd.MarkFlagRequired("owner-type")
	_ = cmd.MarkFlagRequired("owner-id")

	return cmd
}

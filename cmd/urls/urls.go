package urls

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imagevault/imagevault/internal/imagestore"
	"github.com/imagevault/imagevault/internal/runtime"
)

const pageSize = 100

// Command creates the urls command for printing access URLs of stored images.
func Command(ctx *runtime.Context) *cobra.Command {
	var (
		ownerType  string
		ownerID    uint
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "urls",
		Short: "Print access URLs for an owner's stored images",
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := imagestore.NormalizeOwnerType(ownerType)

			offset := 0
			for {
				page, err := ctx.Store.GetImageRecords(normalized, ownerID, categories, nil, pageSize, offset)
				if err != nil {
					return err
				}
				for i := range page {
					urls, err := ctx.Manager.URLs(&page[i])
					if err != nil {
						return err
					}
					labels := make([]string, 0, len(urls))
					for label := range urls {
						labels = append(labels, label)
					}
					sort.Strings(labels)
					for _, label := range labels {
						fmt.Printf("%s\t%s\t%s\t%s\n", page[i].Category, page[i].Name, label, urls[label])
					}
				}
				if len(page) < pageSize {
					return nil
				}
				offset += len(page)
			}
		},
	}

	cmd.Flags().StringVar(&ownerType, "owner-type", "", "Owner model name, for example user or post")
	cmd.Flags().UintVar(&ownerID, "owner-id", 0, "Primary key of the owner record")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Limit output to these categories")
	_ = cmd.MarkFlagRequired("owner-type")
	_ = cmd.MarkFlagRequired("owner-id")

	return cmd
}

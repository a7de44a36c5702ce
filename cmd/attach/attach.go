package attach

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/imagestore"
	"github.com/imagevault/imagevault/internal/runtime"
)

// Command creates the attach command for storing image files against an owner.
func Command(ctx *runtime.Context) *cobra.Command {
	var (
		ownerType string
		ownerID   uint
		category  string
	)

	cmd := &cobra.Command{
		Use:   "attach [files...]",
		Short: "Attach image files to an owner record",
		Long:  `Decode the given image files, generate the configured size variants and record them against the owner.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := imagestore.OwnerRef{Type: ownerType, ID: ownerID}

			uploads := make([]imagestore.Upload, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				uploads = append(uploads, imagestore.Upload{Name: filepath.Base(path), Data: data})
			}

			records, ok := ctx.Collection.StoreMany(owner, uploads, category)
			for _, record := range records {
				urls, err := ctx.Manager.URLs(record)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\n", record.Name, urls[imagestore.OriginalLabel])
			}
			if !ok {
				return fmt.Errorf("one or more files could not be stored")
			}
			return nil
		},
	}

	setupFlags(cmd, &ownerType, &ownerID, &category)

	return cmd
}

func setupFlags(cmd *cobra.Command, ownerType *string, ownerID *uint, category *string) {
	cmd.Flags().StringVar(ownerType, "owner-type", "", "Owner model name, for example user or post")
	cmd.Flags().UintVar(ownerID, "owner-id", 0, "Primary key of the owner record")
	cmd.Flags().StringVar(category, "category", conf.DefaultCategory, "Image category within the owner model")
	_ = cmd.MarkFlagRequired("owner-type")
	_ = cmd.MarkFlagRequired("owner-id")
}

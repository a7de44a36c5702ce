// Package runtime wires the configured collaborators into a ready-to-use
// context for the command surfaces.
package runtime

import (
	"fmt"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/datastore"
	"github.com/imagevault/imagevault/internal/imagecodec"
	"github.com/imagevault/imagevault/internal/imagestore"
)

// Context holds the initialized components shared by the commands.
type Context struct {
	Settings   *conf.Settings
	Store      datastore.Interface
	Blobs      blobstore.Store
	Manager    *imagestore.Manager
	Collection *imagestore.Collection
}

// NewContext returns a context carrying the loaded settings. Components are
// opened later by Init so that commands which never touch storage can run
// without a database.
func NewContext(settings *conf.Settings) *Context {
	return &Context{Settings: settings}
}

// Init opens the metadata store and builds the lifecycle manager. Callers
// must Close the context once done.
func (c *Context) Init() error {
	store := datastore.New(c.Settings)
	if store == nil {
		return fmt.Errorf("no metadata store enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}

	blobs, err := blobstore.NewFromSettings(c.Settings)
	if err != nil {
		_ = store.Close()
		return err
	}

	c.Store = store
	c.Blobs = blobs
	c.Manager = imagestore.NewManager(c.Settings, store, blobs, imagecodec.NewImagingCodec())
	c.Collection = imagestore.NewCollection(c.Manager)
	return nil
}

// Close releases the context's resources.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

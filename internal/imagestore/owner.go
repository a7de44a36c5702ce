package imagestore

// Owner is the capability an owning record exposes to the lifecycle manager.
// Implementations return a type discriminator and their identifier; the
// manager derives everything else.
type Owner interface {
	OwnerType() string
	OwnerID() uint
}

// OwnerRef is a plain value implementation of Owner, for callers that have
// only the type tag and the identifier at hand.
type OwnerRef struct {
	Type string
	ID   uint
}

func (r OwnerRef) OwnerType() string { return r.Type }
func (r OwnerRef) OwnerID() uint     { return r.ID }

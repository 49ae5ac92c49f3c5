package notify

// Identity is the (tag, group) pair the platform uses to address a single
// notification slot. Posting twice with the same identity replaces the slot.
type Identity struct {
	Tag   string `yaml:"tag"   json:"tag"`
	Group string `yaml:"group" json:"group"`
}

// Resolve maps a category to its identity. The result depends only on the
// category name and its channel, so it is stable across process restarts.
func Resolve(c Category) Identity {
	return Identity{
		Tag:   c.String(),
		Group: c.Channel().String(),
	}
}

// Key returns a single string form of the identity, suitable for map keys
// and persisted records.
func (id Identity) Key() string {
	return id.Group + "/" + id.Tag
}

func (id Identity) String() string { return id.Key() }

package editor

import (
	"fmt"

	uuid "github.com/nu7hatch/gouuid"
)

const (
	KindText      = "text"
	KindSignature = "sig"
)

// IDGenerator hands out annotation ids. Implementations need not check for
// collisions with existing annotations; the editor retries until an id is
// unused.
type IDGenerator interface {
	NewID(kind string) string
}

// CounterIDs yields text-1, sig-2, ... and is the default generator.
type CounterIDs struct {
	n uint64
}

func (c *CounterIDs) NewID(kind string) string {
	c.n++
	return fmt.Sprintf("%s-%d", kind, c.n)
}

// RandomIDs yields kind-prefixed UUIDv4 ids.
type RandomIDs struct {
	fallback CounterIDs
}

func (r *RandomIDs) NewID(kind string) string {
	u, err := uuid.NewV4()
	if err != nil {
		return r.fallback.NewID(kind)
	}
	return kind + "-" + u.String()
}

func newUniqueID(gen IDGenerator, kind string, exists func(string) bool) string {
	base := gen.NewID(kind)
	id := base
	for i := 1; exists(id); i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	return id
}

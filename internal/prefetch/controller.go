// Package prefetch implements an adaptive next-line/stride prefetch
// controller: a single-threaded state machine, driven once per demand
// access, that trains on a repeating address stride and then issues
// speculative reads ahead of it into the top-level cache.
package prefetch

// TopLevel is the subset of cache.Level the controller needs: a
// residency check and a way to issue a prefetch read.
type TopLevel interface {
	InCache(addr uint32) bool
	GetByte(addr uint32, cycles *uint64, isPrefetch bool) byte
}

// PageOwner is the subset of the memory collaborator the controller
// needs to guarantee a prefetch address's backing page exists before
// reading it. This is redundant with what the top level's own fill
// path does, but harmless.
type PageOwner interface {
	IsPageExist(addr uint32) bool
	AddPage(addr uint32)
}

const (
	trainingThreshold = 3
	missTolerance     = 3
)

// Controller tracks stride between successive demand addresses. It
// holds no resource besides its scalar fields and must not outlive the
// TopLevel and PageOwner it was built with.
type Controller struct {
	top  TopLevel
	page PageOwner

	lastAddr    uint32
	stride      int64
	sameCount   int
	prefetching bool
	missCount   int
}

// NewController returns a controller in training mode, as if the
// previous address were 0.
func NewController(top TopLevel, page PageOwner) *Controller {
	return &Controller{top: top, page: page}
}

// Observe is called once per demand access, after that access has
// already been applied to the hierarchy. It updates the stride state
// machine and may issue speculative prefetch reads into the top level.
func (c *Controller) Observe(addr uint32) {
	stride := int64(addr) - int64(c.lastAddr)

	if !c.prefetching {
		c.train(addr, stride)
	} else {
		c.advance(addr, stride)
	}

	c.lastAddr = addr
}

func (c *Controller) train(addr uint32, stride int64) {
	if stride == c.stride {
		c.sameCount++
	} else {
		c.stride = stride
		c.sameCount = 1
	}

	if c.sameCount < trainingThreshold {
		return
	}

	c.prefetching = true
	c.missCount = 0

	for i := int64(1); i <= 3; i++ {
		c.issue(addr, i)
	}
}

func (c *Controller) advance(addr uint32, stride int64) {
	if stride == c.stride {
		c.missCount = 0

		for i := int64(1); i <= 2; i++ {
			c.issue(addr, i)
		}

		return
	}

	c.missCount++
	if c.missCount > missTolerance {
		c.prefetching = false
		c.stride = stride
		c.sameCount = 1
	}
}

// issue prefetches addr + n*stride, unless it is already resident.
func (c *Controller) issue(addr uint32, n int64) {
	target := uint32(int64(addr) + n*c.stride)

	if c.top.InCache(target) {
		return
	}

	if !c.page.IsPageExist(target) {
		c.page.AddPage(target)
	}

	c.top.GetByte(target, nil, true)
}

// Prefetching reports whether the controller is currently in active
// (as opposed to training) mode. Exposed for tests and diagnostics.
func (c *Controller) Prefetching() bool {
	return c.prefetching
}

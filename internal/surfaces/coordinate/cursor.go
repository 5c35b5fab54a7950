package coordinate

import (
	"sync"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// CursorState tracks the virtual cursor position simulated across cu.*
// coordinate actions, addressed in screen-absolute coordinates. It starts
// unset: cu.cursorPosition falls back to the OS cursor until the first CU
// action lands.
type CursorState struct {
	mu      sync.Mutex
	point   fw.Point
	virtual bool
}

// Set records a just-simulated action's end point.
func (c *CursorState) Set(p fw.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.point = p
	c.virtual = true
}

// Get reports the last simulated point and whether one has been recorded
// yet.
func (c *CursorState) Get() (fw.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.point, c.virtual
}

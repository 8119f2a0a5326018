// Package algo implements the MAPF planners: space-time A*, independent,
// cooperative (prioritized), CBS, and MIP, all sharing the core package's
// grid/agent/conflict/constraint/reservation model.
package algo

import "time"

// expansionCheckInterval is the K from §5: STA* checks its caps once per
// K expansions rather than on every expansion.
const expansionCheckInterval = 1024

// Caps bounds a planner's CPU and expansion budget (§5). The zero value
// means "uncapped".
type Caps struct {
	MaxWallTime   time.Duration
	MaxExpansions int
	// MaxMIPDoublings overrides mipMaxDoublings for the mip planner; zero
	// selects the package default.
	MaxMIPDoublings int
}

// budget tracks elapsed work against a Caps and reports whether the cap
// has been breached. It is not safe for concurrent use; each planner
// invocation owns its own budget (§5 "the core solver is single-threaded
// and synchronous").
type budget struct {
	caps       Caps
	started    time.Time
	expansions int
}

func newBudget(caps Caps) *budget {
	return &budget{caps: caps, started: time.Now()}
}

// tick records one unit of work and reports whether the cap has now been
// breached. STA* and MIP call it once per expansionCheckInterval
// expansions, and CBS once per low-level replan, so MaxExpansions is
// compared against this count of ticks rather than against single node
// expansions.
func (b *budget) tick() bool {
	b.expansions++
	return b.exceeded()
}

func (b *budget) exceeded() bool {
	if b.caps.MaxExpansions > 0 && b.expansions >= b.caps.MaxExpansions {
		return true
	}
	if b.caps.MaxWallTime > 0 && time.Since(b.started) >= b.caps.MaxWallTime {
		return true
	}
	return false
}

func (b *budget) elapsed() time.Duration {
	return time.Since(b.started)
}

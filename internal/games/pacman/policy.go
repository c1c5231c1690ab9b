package pacman

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Mode selects how pursuers react to the player.
type Mode uint8

const (
	ModeChase Mode = iota // Normal: close distance
	ModeFlee              // Vulnerable: open distance
)

func (m Mode) String() string {
	if m == ModeFlee {
		return "flee"
	}
	return "chase"
}

// Pursuer steering constants, in world units.
const (
	probeDistance    = 4.0
	lookahead        = 15.0
	continuityBonus  = 5.0
	redirectDistance = 6.0
)

// blocked reports whether box overlaps any wall. Linear scan.
func blocked(box core.RectF, walls []core.RectF) bool {
	for _, w := range walls {
		if box.Intersects(w) {
			return true
		}
	}
	return false
}

// chooseDirection scores every open direction by the distance from a point
// slightly ahead of the pursuer to target. The highest score wins; ties keep
// the earlier direction in up, down, left, right order. DirNone means every
// probe was blocked.
func chooseDirection(p *Pursuer, mode Mode, target core.Vec, walls []core.RectF) Direction {
	best := DirNone
	bestScore := 0.0
	center := p.box.Center()

	for _, d := range cardinals {
		delta := d.Delta()
		if blocked(p.box.Moved(delta.Scale(probeDistance)), walls) {
			continue
		}

		dist := center.Add(delta.Scale(lookahead)).Dist(target)
		score := -dist
		if mode == ModeFlee {
			score = dist
		}
		if d == p.dir {
			score += continuityBonus
		}

		if best == DirNone || score > bestScore {
			best = d
			bestScore = score
		}
	}
	return best
}

// redirect picks the first clear direction from a shuffled cardinal list.
// It returns false and leaves the heading unchanged when the pursuer is boxed in.
func redirect(p *Pursuer, walls []core.RectF, rng *rand.Rand) bool {
	order := cardinals
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, d := range order {
		if !blocked(p.box.Moved(d.Delta().Scale(redirectDistance)), walls) {
			p.dir = d
			return true
		}
	}
	return false
}

// steer runs one frame of pursuer movement: decide, then move or redirect.
// A redirect never moves the pursuer in the same frame.
func steer(p *Pursuer, mode Mode, target core.Vec, walls []core.RectF, speed, dt float64, rng *rand.Rand) {
	if d := chooseDirection(p, mode, target, walls); d != DirNone {
		p.dir = d
	}

	next := p.box.Moved(p.dir.Delta().Scale(speed * dt))
	if !blocked(next, walls) {
		p.box = next
		return
	}
	redirect(p, walls, rng)
}

package pacman

import (
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Direction is a cardinal heading, or none when standing still.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// cardinals is the fixed enumeration order used for tie-breaking.
var cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector for the direction. Screen y grows downward.
func (d Direction) Delta() core.Vec {
	switch d {
	case DirUp:
		return core.Vec{Y: -1}
	case DirDown:
		return core.Vec{Y: 1}
	case DirLeft:
		return core.Vec{X: -1}
	case DirRight:
		return core.Vec{X: 1}
	default:
		return core.Vec{}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Body is anything with a box that collides and can be repositioned.
type Body interface {
	Bounds() core.RectF
	Position() core.Vec
	SetPosition(p core.Vec)
}

// Animation periods.
const (
	mouthPeriod = 100 * time.Millisecond
	flashPeriod = 200 * time.Millisecond
	flashFrames = 3 // blue, white, yellow
)

// Player is the user-controlled agent.
type Player struct {
	box    core.RectF
	speed  float64
	dir    Direction
	queued Direction
	alive  bool

	mouthOpen  bool
	mouthTimer time.Duration
}

func newPlayer(pos core.Vec, size, speed float64) Player {
	return Player{
		box:       core.NewRectF(pos.X, pos.Y, size, size),
		speed:     speed,
		alive:     true,
		mouthOpen: true,
	}
}

// Bounds returns the player's collision box.
func (p Player) Bounds() core.RectF { return p.box }

// Position returns the top-left corner of the box.
func (p Player) Position() core.Vec { return core.Vec{X: p.box.X, Y: p.box.Y} }

// SetPosition moves the box without collision checks.
func (p *Player) SetPosition(v core.Vec) { p.box = p.box.At(v) }

// Direction returns the committed heading.
func (p Player) Direction() Direction { return p.dir }

// Queued returns the requested heading that has not been applied yet.
func (p Player) Queued() Direction { return p.queued }

// Alive reports whether the player has not been caught.
func (p Player) Alive() bool { return p.alive }

// MouthOpen reports the current animation frame.
func (p Player) MouthOpen() bool { return p.mouthOpen }

// Queue requests a heading change, applied once it is not blocked.
func (p *Player) Queue(d Direction) {
	if d != DirNone {
		p.queued = d
	}
}

func (p *Player) animate(dt time.Duration) {
	p.mouthTimer += dt
	if p.mouthTimer >= mouthPeriod {
		p.mouthTimer = 0
		p.mouthOpen = !p.mouthOpen
	}
}

// Pursuer is a computer-controlled chaser.
type Pursuer struct {
	box   core.RectF
	dir   Direction
	speed float64 // Base speed times the per-instance multiplier
	slot  int     // Colour slot, assigned in layout order

	flashFrame int
	flashTimer time.Duration
}

// Bounds returns the pursuer's collision box.
func (p Pursuer) Bounds() core.RectF { return p.box }

// Position returns the top-left corner of the box.
func (p Pursuer) Position() core.Vec { return core.Vec{X: p.box.X, Y: p.box.Y} }

// SetPosition moves the box without collision checks.
func (p *Pursuer) SetPosition(v core.Vec) { p.box = p.box.At(v) }

// Direction returns the current heading.
func (p Pursuer) Direction() Direction { return p.dir }

// Speed returns units per second before difficulty scaling.
func (p Pursuer) Speed() float64 { return p.speed }

// Slot returns the colour slot.
func (p Pursuer) Slot() int { return p.slot }

// FlashFrame returns the vulnerable animation frame in [0, 3).
func (p Pursuer) FlashFrame() int { return p.flashFrame }

func (p *Pursuer) animate(mode Mode, dt time.Duration) {
	if mode != ModeFlee {
		p.flashFrame = 0
		p.flashTimer = 0
		return
	}
	p.flashTimer += dt
	if p.flashTimer >= flashPeriod {
		p.flashTimer = 0
		p.flashFrame = (p.flashFrame + 1) % flashFrames
	}
}

// wrap teleports a body whose box has fully left the maze to the opposite edge.
func wrap(b Body, width, height float64) {
	box := b.Bounds()
	pos := b.Position()

	switch {
	case box.Right() < 0:
		pos.X = width
	case box.X > width:
		pos.X = -box.W
	}
	switch {
	case box.Bottom() < 0:
		pos.Y = height
	case box.Y > height:
		pos.Y = -box.H
	}

	if pos != b.Position() {
		b.SetPosition(pos)
	}
}

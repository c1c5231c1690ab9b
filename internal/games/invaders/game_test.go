package invaders

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const frame = 20 * time.Millisecond

// quiet returns the default config with alien fire disabled.
func quiet() config.InvadersConfig {
	cfg := config.DefaultInvadersConfig()
	cfg.Aliens.FireChance = 0
	return cfg
}

func newTestGame(seed int64, cfg config.InvadersConfig) *Game {
	rt := core.DefaultConfig()
	rt.Seed = seed
	g := New()
	g.ResetWith(rt, cfg)
	return g
}

func press(actions ...core.Action) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, a := range actions {
		in.Press(core.Player1, a)
	}
	return in
}

func has(events []core.Event, e core.Event) bool {
	for _, x := range events {
		if x == e {
			return true
		}
	}
	return false
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		g := newTestGame(77, config.DefaultInvadersConfig())
		var snaps []Snapshot
		for i := 0; i < 600; i++ {
			keys := []core.Action{core.ActionFire}
			if (i/40)%2 == 0 {
				keys = append(keys, core.ActionLeft)
			} else {
				keys = append(keys, core.ActionRight)
			}
			g.Step(press(keys...), frame)
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Fatal("same seed and input produced different games")
	}
}

func TestNewWave(t *testing.T) {
	g := newTestGame(1, quiet())

	if g.remaining() != 50 {
		t.Errorf("formation has %d aliens, expected 50", g.remaining())
	}
	if g.lives != 3 {
		t.Errorf("lives = %d, expected 3", g.lives)
	}
	if g.originX != 20 || g.originY != formationTop {
		t.Errorf("origin = (%d,%d), expected (20,%d)", g.originX, g.originY, formationTop)
	}
	if len(g.stars) != 40 {
		t.Errorf("created %d stars, expected 40", len(g.stars))
	}
	for _, s := range g.stars {
		if s.x < 0 || s.x >= 80 || s.y < hudHeight || s.y >= 24 {
			t.Errorf("star out of bounds at (%d,%d)", s.x, s.y)
		}
	}
}

func TestShipMovesAndClamps(t *testing.T) {
	g := newTestGame(1, quiet())
	x := g.shipX

	g.Step(press(core.ActionRight), 100*time.Millisecond)
	if math.Abs(g.shipX-(x+3)) > 1e-9 {
		t.Errorf("ship x = %v, expected %v", g.shipX, x+3)
	}

	for i := 0; i < 200; i++ {
		g.Step(press(core.ActionLeft), frame)
	}
	if g.shipX != 0 {
		t.Errorf("ship should stop at the left edge, got %v", g.shipX)
	}
}

func TestFireCooldown(t *testing.T) {
	g := newTestGame(1, quiet())

	res := g.Step(press(core.ActionFire), frame)
	if !has(res.Events, core.EventShot) || len(g.shots) != 1 {
		t.Fatalf("first shot: events %v shots %d", res.Events, len(g.shots))
	}

	for i := 0; i < 5; i++ {
		if res := g.Step(press(core.ActionFire), frame); has(res.Events, core.EventShot) {
			t.Fatalf("frame %d fired during cooldown", i)
		}
	}

	for i := 0; i < 15; i++ {
		g.Step(press(), frame)
	}
	if res := g.Step(press(core.ActionFire), frame); !has(res.Events, core.EventShot) {
		t.Error("ship should fire again after the cooldown")
	}
}

func TestShotDestroysAlien(t *testing.T) {
	g := newTestGame(1, quiet())
	g.shipX = 36 // Shot column 37 sits under formation column 4

	g.Step(press(core.ActionFire), frame)
	killed := false
	for i := 0; i < 50 && !killed; i++ {
		res := g.Step(press(), frame)
		killed = has(res.Events, core.EventEnemyDestroyed)
	}

	if !killed {
		t.Fatal("shot never hit the formation")
	}
	if g.score != 10 || g.remaining() != 49 {
		t.Errorf("score %d remaining %d, expected 10 and 49", g.score, g.remaining())
	}
	if g.alive[4][4] {
		t.Error("the bottom alien in the column should die first")
	}
	if len(g.shots) != 0 {
		t.Error("the shot should be consumed")
	}
}

func TestClearingWaveWins(t *testing.T) {
	g := newTestGame(1, quiet())
	for r := range g.alive {
		for c := range g.alive[r] {
			g.alive[r][c] = r == 4 && c == 4
		}
	}
	g.shipX = 36

	g.Step(press(core.ActionFire), frame)
	var res core.StepResult
	for i := 0; i < 50 && !res.State.GameOver; i++ {
		res = g.Step(press(), frame)
	}

	if !res.State.Won || !has(res.Events, core.EventCleared) {
		t.Fatalf("state %+v events %v, expected win", res.State, res.Events)
	}
	if res.State.Score != 10 {
		t.Errorf("score = %d, expected 10", res.State.Score)
	}
}

func TestBombCostsLife(t *testing.T) {
	g := newTestGame(1, quiet())
	g.bombs = []shot{{x: int(g.shipX) + 1, y: 21.5, vy: 15}}

	res := g.Step(press(), 50*time.Millisecond)
	if !has(res.Events, core.EventDeath) || g.lives != 2 {
		t.Fatalf("events %v lives %d, expected a lost life", res.Events, g.lives)
	}
	if res.State.GameOver {
		t.Error("game should continue with lives left")
	}

	g.lives = 1
	g.bombs = []shot{{x: int(g.shipX) + 1, y: 21.5, vy: 15}}
	res = g.Step(press(), 50*time.Millisecond)
	if !res.State.GameOver || res.State.Won {
		t.Errorf("state = %+v, expected loss", res.State)
	}
}

func TestInvasionEndsGame(t *testing.T) {
	g := newTestGame(1, quiet())
	g.originY = g.shipY - (g.cfg.Aliens.Rows-1)*rowSpacing

	res := g.Step(press(), frame)
	if !res.State.GameOver || res.State.Won || !has(res.Events, core.EventDeath) {
		t.Errorf("state %+v events %v, expected invasion loss", res.State, res.Events)
	}
}

func TestFormationDropsAtEdge(t *testing.T) {
	g := newTestGame(1, quiet())
	g.originX = 80 - g.formationWidth()

	g.advanceFormation()
	if g.originY != formationTop+1 || g.march != -1 {
		t.Fatalf("origin y %d march %d, expected drop and reversal", g.originY, g.march)
	}
	x := g.originX
	g.advanceFormation()
	if g.originX != x-1 {
		t.Errorf("origin x = %d, expected %d", g.originX, x-1)
	}

	// An emptied right flank lets the formation travel further
	for r := range g.alive {
		g.alive[r][9] = false
	}
	g.originX = 80 - g.formationWidth()
	g.march = 1
	g.advanceFormation()
	if g.originX != 80-g.formationWidth()+1 {
		t.Error("formation should use the width of live columns")
	}
}

func TestMarchFollowsInterval(t *testing.T) {
	g := newTestGame(1, quiet())
	x := g.originX

	for i := 0; i < 24; i++ {
		g.Step(press(), frame)
	}
	if g.originX != x {
		t.Fatal("formation marched early")
	}
	g.Step(press(), frame)
	if g.originX != x+1 {
		t.Errorf("origin x = %d after 500ms, expected %d", g.originX, x+1)
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newTestGame(1, quiet())
	if res := g.Step(press(core.ActionPause), frame); !res.State.Paused {
		t.Fatal("expected pause")
	}
	x := g.shipX
	g.Step(press(core.ActionLeft), frame)
	if g.shipX != x {
		t.Error("ship moved while paused")
	}

	g.score = 120
	res := g.Step(press(core.ActionRestart), frame)
	if res.State.Paused || res.State.Score != 0 || g.remaining() != 50 {
		t.Errorf("restart left %+v with %d aliens", res.State, g.remaining())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(1, quiet())
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	if n := strings.Count(out, alienGlyph); n != 50 {
		t.Errorf("drew %d aliens, expected 50", n)
	}
	if !strings.Contains(scr.Row(g.shipY), shipGlyph) {
		t.Error("ship missing from its row")
	}
	if !strings.Contains(scr.Row(0), "Lives: 3") {
		t.Errorf("HUD = %q", scr.Row(0))
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 30, ScreenH: 10}, quiet())
	if !g.tooSmall {
		t.Fatal("expected too small")
	}
	if res := g.Step(press(core.ActionFire), frame); len(res.Events) != 0 {
		t.Error("too-small game should not advance")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("invaders") || registry.Players("invaders") != 1 {
		t.Error("invaders should register as a one-player game")
	}
}

func TestFireChanceIndependentOfFrameRate(t *testing.T) {
	const p = 0.01
	if got := fireChance(p, fireFrame); math.Abs(got-p) > 1e-12 {
		t.Errorf("fireChance at reference frame = %v, expected %v", got, p)
	}

	// Two half frames must add up to one full frame.
	half := fireChance(p, fireFrame/2)
	if combined := 1 - (1-half)*(1-half); math.Abs(combined-p) > 1e-9 {
		t.Errorf("two half frames give %v, expected %v", combined, p)
	}
	if fireChance(p, fireFrame/2) >= fireChance(p, fireFrame) {
		t.Error("shorter frames should fire less often")
	}

	tests := []struct {
		chance float64
		dt     time.Duration
		want   float64
	}{
		{0, frame, 0},
		{p, 0, 0},
		{1, frame, 1},
	}
	for _, tt := range tests {
		if got := fireChance(tt.chance, tt.dt); got != tt.want {
			t.Errorf("fireChance(%v, %v) = %v, expected %v", tt.chance, tt.dt, got, tt.want)
		}
	}
}

package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

const moveTime = 100 * time.Millisecond

func newTestGame(seed int64) *Game {
	g := New()
	g.ResetWith(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24}, config.DefaultSnakeConfig())
	return g
}

func press(actions ...core.Action) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, a := range actions {
		in.Press(core.Player1, a)
	}
	return in
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	for i := 0; i < 200; i++ {
		var in core.MultiInputFrame
		switch i {
		case 20:
			in = press(core.ActionDown)
		case 40:
			in = press(core.ActionLeft)
		case 70:
			in = press(core.ActionUp)
		default:
			in = press()
		}

		g1.Step(in, 16*time.Millisecond)
		g2.Step(in, 16*time.Millisecond)

		if g1.Snapshot() != g2.Snapshot() {
			t.Fatalf("tick %d diverged:\n%+v\n%+v", i, g1.Snapshot(), g2.Snapshot())
		}
	}
}

func TestMovesTenCellsPerSecond(t *testing.T) {
	g := newTestGame(1)
	startX := g.snake[0].X

	for i := 0; i < 50; i++ {
		g.Step(press(), 20*time.Millisecond)
	}
	if got := g.snake[0].X - startX; got != 10 {
		t.Errorf("head moved %d cells in one second, expected 10", got)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	g.Step(press(core.ActionLeft), time.Millisecond)
	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	g.Step(press(core.ActionDown), time.Millisecond)
	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newTestGame(999)

	// Food never lands on the snake or walls
	for i := 0; i < 100; i++ {
		g.spawnFood()

		if g.walls[g.food] {
			t.Errorf("Food spawned on wall at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.food.X < 0 || g.food.X >= g.mapWidth || g.food.Y < 0 || g.food.Y >= g.mapHeight {
			t.Errorf("Food spawned out of bounds at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestCollisionDetection(t *testing.T) {
	tests := []struct {
		name  string
		snake []Point
		dir   Direction
	}{
		{"top wall", []Point{{1, 1}, {2, 1}, {3, 1}}, DirUp},
		{"left wall", []Point{{1, 5}, {2, 5}, {3, 5}}, DirLeft},
		{"self", []Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(789)
			g.snake = tc.snake
			g.direction = tc.dir
			g.nextDir = tc.dir

			if e := g.moveSnake(); e != core.EventDeath {
				t.Errorf("event = %v, expected death", e)
			}
			if !g.gameOver {
				t.Error("Game should be over after collision")
			}
		})
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	g := newTestGame(5)
	// A 2x2 loop: the head moves into the cell the tail is leaving
	g.snake = []Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}}
	g.direction = DirUp
	g.nextDir = DirRight
	g.food = Point{X: 20, Y: 10}

	g.moveSnake()
	if g.gameOver {
		t.Error("moving onto the vacating tail should be legal")
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := newTestGame(222)
	initialLen := len(g.snake)

	head := g.snake[0]
	g.food = Point{X: head.X + 1, Y: head.Y}

	if e := g.moveSnake(); e != core.EventPellet {
		t.Errorf("event = %v, expected pellet", e)
	}
	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != 10 {
		t.Errorf("Score should be 10 after eating food, got %d", g.score)
	}
}

func TestPauseWithSpaceOrP(t *testing.T) {
	for _, key := range []core.Action{core.ActionFire, core.ActionPause} {
		g := newTestGame(3)
		g.Step(press(key), time.Millisecond)
		if !g.State().Paused {
			t.Fatalf("%v should pause", key)
		}

		head := g.snake[0]
		g.Step(press(), time.Second)
		if g.snake[0] != head {
			t.Errorf("%v: snake moved while paused", key)
		}

		g.Step(press(key), time.Millisecond)
		if g.State().Paused {
			t.Errorf("%v should resume", key)
		}
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(8)
	g.Step(press(core.ActionRestart), time.Millisecond)
	if g.tick != 1 {
		t.Error("R should not restart a running game")
	}

	g.snake = []Point{{1, 1}, {2, 1}, {3, 1}}
	g.direction = DirUp
	g.nextDir = DirUp
	res := g.Step(press(), moveTime)
	if !res.State.GameOver || len(res.Events) != 1 || res.Events[0] != core.EventDeath {
		t.Fatalf("result = %+v, expected death", res)
	}

	res = g.Step(press(core.ActionRestart), time.Millisecond)
	if res.State.GameOver || res.State.Score != 0 || len(g.snake) != 3 {
		t.Errorf("restart left state %+v with length %d", res.State, len(g.snake))
	}
}

func TestFullBoardWins(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{Seed: 1, ScreenW: minWidth, ScreenH: minHeight + hudHeight}, config.DefaultSnakeConfig())

	// Fill every free cell but one with the body
	var body []Point
	var last Point
	for y := 1; y < g.mapHeight-1; y++ {
		for x := 1; x < g.mapWidth-1; x++ {
			p := Point{X: x, Y: y}
			if y == 1 && x == 1 {
				last = p
				continue
			}
			body = append(body, p)
		}
	}
	g.snake = append([]Point{{X: 2, Y: 1}}, body[1:]...)
	g.food = last
	g.direction = DirLeft
	g.nextDir = DirLeft

	if e := g.moveSnake(); e != core.EventCleared {
		t.Fatalf("event = %v, expected cleared", e)
	}
	if !g.State().Won || !g.State().GameOver {
		t.Errorf("state = %+v, expected win", g.State())
	}
}

func TestGameID(t *testing.T) {
	g := New()
	if g.ID() != "snake" || g.Title() != "Snake" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5}, config.DefaultSnakeConfig())

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window") {
		t.Error("expected size warning")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(444)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake  Score: 0") {
		t.Error("HUD should show the score")
	}
	if strings.Count(content, "O") != 1 {
		t.Error("expected exactly one head")
	}
	head := g.snake[0]
	if screen.Get(head.X, hudHeight+head.Y) != 'O' {
		t.Error("head drawn at wrong cell")
	}
}

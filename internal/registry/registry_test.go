package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

type stubGame struct {
	title   string
	players int
}

func (s *stubGame) ID() string               { return "stub" }
func (s *stubGame) Title() string            { return s.title }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Render(*core.Screen)      {}
func (s *stubGame) State() core.GameState    { return core.GameState{} }
func (s *stubGame) Players() int             { return s.players }
func (s *stubGame) Step(core.MultiInputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

type soloGame struct{ stubGame }

func (s *soloGame) Players() int { return 1 }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_duo", func() Game { return &stubGame{title: "Duo", players: 2} })

	if !Exists("test_duo") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("test_duo")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.Title() != "Duo" {
		t.Errorf("Title() = %q, expected Duo", g.Title())
	}
	if Players("test_duo") != 2 {
		t.Errorf("Players() = %d, expected 2", Players("test_duo"))
	}
	if info := Info("test_duo"); info.ID != "test_duo" || info.Title != "Duo" {
		t.Errorf("Info() = %+v", info)
	}
	if info := Info("no_such_game"); info != (GameInfo{}) {
		t.Errorf("Info() for unknown game = %+v", info)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Players("no_such_game") != 0 {
		t.Error("unknown game should seat 0 players")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &soloGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("test_dup", func() Game { return &soloGame{} })
}

func TestListSorted(t *testing.T) {
	Register("test_b", func() Game { return &soloGame{} })
	Register("test_a", func() Game { return &soloGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

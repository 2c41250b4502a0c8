package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

type stubScene struct {
	id    string
	steps int
}

func (s *stubScene) ID() string                   { return s.id }
func (s *stubScene) Title() string                { return strings.ToUpper(s.id) }
func (s *stubScene) Reset(cfg core.RuntimeConfig) { s.steps = 0 }
func (s *stubScene) Step()                        { s.steps++ }
func (s *stubScene) Draw(c *render.Canvas)        {}

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Scene { return &stubScene{id: "zz-stub"} })
	Register("aa-stub", func() Scene { return &stubScene{id: "aa-stub"} })

	if !Exists("zz-stub") || !Exists("aa-stub") {
		t.Fatal("registered scenes should exist")
	}
	if Exists("missing") {
		t.Error("Exists() true for unregistered scene")
	}

	s, err := Create("aa-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if s.ID() != "aa-stub" {
		t.Errorf("Create() returned scene %q", s.ID())
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	var found bool
	for _, info := range list {
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "ZZ-STUB" {
				t.Errorf("Title = %q, expected ZZ-STUB", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() missing registered scene")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-scene"); err == nil {
		t.Error("Create() with unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup-stub", func() Scene { return &stubScene{id: "dup-stub"} })
}

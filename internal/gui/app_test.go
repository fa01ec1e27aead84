package gui

import (
	"math/rand"
	"testing"

	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/mesh"
)

func TestRunWithoutDisplay(t *testing.T) {
	defer func(open func(int) bool, shut func()) {
		openWindow, closeWindow = open, shut
	}(openWindow, closeWindow)

	openWindow = func(int) bool { return false }
	closeWindow = func() { t.Error("closed a window that was never opened") }

	cfg := config.DefaultConfig()
	s := mesh.New(mesh.DefaultParams(), rand.New(rand.NewSource(1)))
	if err := Run(cfg, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Len() != 0 || s.Generation() != 0 {
		t.Errorf("simulation touched without a window: len=%d generation=%d", s.Len(), s.Generation())
	}
}

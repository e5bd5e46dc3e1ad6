package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/scalegesture"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []scalegesture.ScaleEvent
	ScaleEventType.Subscribe(world, func(w donburi.World, e scalegesture.ScaleEvent) {
		received = append(received, e)
	})

	store.EmitEvent(scalegesture.ScaleEvent{
		Type:     scalegesture.EventScaleBegin,
		FocusX:   100,
		FocusY:   200,
		Accepted: true,
	})
	store.EmitEvent(scalegesture.ScaleEvent{
		Type:        scalegesture.EventScale,
		ScaleFactor: 2.0,
		TimeDelta:   8 * time.Millisecond,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	ScaleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != scalegesture.EventScaleBegin || e0.FocusX != 100 || e0.FocusY != 200 || !e0.Accepted {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != scalegesture.EventScale || e1.ScaleFactor != 2.0 || e1.TimeDelta != 8*time.Millisecond {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_DetectorPinch(t *testing.T) {
	world := donburi.NewWorld()

	cfg := scalegesture.DefaultConfig()
	cfg.MinSpan = 20
	cfg.TouchMinMajor = 0
	d := scalegesture.New(cfg, nil)
	d.SetEventStore(NewDonburiStore(world))

	counts := map[scalegesture.EventType]int{}
	ScaleEventType.Subscribe(world, func(w donburi.World, e scalegesture.ScaleEvent) {
		counts[e.Type]++
	})

	synth := scalegesture.NewSynth(8 * time.Millisecond)
	synth.Pinch(300, 300, 100, 300, 20)
	for _, f := range synth.Frames() {
		d.ProcessFrame(f)
	}
	ScaleEventType.ProcessEvents(world)

	if counts[scalegesture.EventScaleBegin] != 1 {
		t.Errorf("begin events = %d, want 1", counts[scalegesture.EventScaleBegin])
	}
	if counts[scalegesture.EventScale] == 0 {
		t.Error("expected scale events")
	}
	if counts[scalegesture.EventScaleEnd] != 1 {
		t.Errorf("end events = %d, want 1", counts[scalegesture.EventScaleEnd])
	}
}

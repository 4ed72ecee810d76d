package plant_test

import (
	"context"
	"testing"
	"time"

	"juicery/internal/faults"
	"juicery/internal/orange"
	"juicery/internal/plant"
)

func fastFleet(count int) *plant.Fleet {
	return plant.NewFleet(count,
		plant.WithClock(orange.ScaledClock{Scale: 0.1}),
		plant.WithPollTimeout(10*time.Millisecond),
		plant.WithDrainTimeout(time.Second),
	)
}

func TestFleetRunSumsPlants(t *testing.T) {
	f := fastFleet(3)
	if err := f.Run(context.Background(), 200*time.Millisecond); err != nil && !faults.IsInterrupted(err) {
		t.Fatalf("Run failed: %v", err)
	}

	per := f.PerPlant()
	if len(per) != 3 {
		t.Fatalf("expected 3 plants, got %d", len(per))
	}
	var sum plant.Stats
	for i, s := range per {
		if s.Provided == 0 {
			t.Fatalf("plant %d provided nothing", i+1)
		}
		assertConserved(t, s)
		sum = sum.Add(s)
	}
	if sum != f.Totals() {
		t.Fatalf("totals %+v differ from sum %+v", f.Totals(), sum)
	}
	for i, p := range f.Plants() {
		if p.Number() != i+1 {
			t.Fatalf("plant %d numbered %d", i+1, p.Number())
		}
	}
}

func TestFleetRunEndsEarlyOnCancel(t *testing.T) {
	f := fastFleet(2)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	if err := f.Run(ctx, time.Minute); err != nil && !faults.IsInterrupted(err) {
		t.Fatalf("Run failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("cancelled run took %s", elapsed)
	}
	for _, p := range f.Plants() {
		if p.Lifecycle() != plant.Stopped {
			t.Fatalf("%s not stopped", p.Name())
		}
		assertConserved(t, p.Stats())
	}
}

func TestFleetStartJoinsStartedPlantsOnFailure(t *testing.T) {
	f := fastFleet(2)
	plants := f.Plants()
	if err := plants[1].Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		plants[1].Stop()
		_ = plants[1].WaitToStop()
	})

	if err := f.Start(context.Background()); err == nil {
		t.Fatal("expected fleet start to fail on an already running plant")
	}
	if got := plants[0].Lifecycle(); got != plant.Stopped {
		t.Fatalf("expected plant 1 joined after failed start, got %s", got)
	}
	if got := plants[1].Lifecycle(); got != plant.Running {
		t.Fatalf("plant 2 should keep running, got %s", got)
	}
}

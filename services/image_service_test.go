package services

import (
	"errors"
	"testing"
)

func countMains(t *testing.T, svc *ImageService, plotID uint) int {
	t.Helper()

	images, err := svc.ListForPlot(plotID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	mains := 0
	for _, img := range images {
		if img.IsMain {
			mains++
		}
	}
	return mains
}

func TestCreateAppendsAfterMax(t *testing.T) {
	svc := NewImageService(newTestDB(t))

	first, err := svc.Create("a.jpg", "/images/a.jpg", -1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.SortOrder != 0 {
		t.Errorf("first image order = %d, want 0", first.SortOrder)
	}

	if _, err := svc.Create("b.jpg", "/images/b.jpg", 5); err != nil {
		t.Fatalf("create: %v", err)
	}

	third, err := svc.Create("c.jpg", "/images/c.jpg", -1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.SortOrder != 6 {
		t.Errorf("appended image order = %d, want 6", third.SortOrder)
	}
}

func TestSetMainKeepsSingleMain(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	c := mustAttachImage(t, svc, plot.ID, "c.jpg", 2)

	for _, id := range []uint{a.ID, b.ID, c.ID, b.ID} {
		if err := svc.SetMain(plot.ID, id); err != nil {
			t.Fatalf("SetMain(%d): %v", id, err)
		}
		if mains := countMains(t, svc, plot.ID); mains != 1 {
			t.Fatalf("after SetMain(%d): %d main images, want 1", id, mains)
		}
	}

	// Idempotent: repeating the call changes nothing.
	if err := svc.SetMain(plot.ID, b.ID); err != nil {
		t.Fatalf("repeated SetMain: %v", err)
	}
	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if images[0].ID != b.ID || !images[0].IsMain {
		t.Errorf("main image = %d, want %d", images[0].ID, b.ID)
	}
}

func TestSetMainRejectsForeignImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")
	other := mustCreatePlot(t, db, "other")

	mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	foreign := mustAttachImage(t, svc, other.ID, "x.jpg", 0)

	if err := svc.SetMain(plot.ID, foreign.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if mains := countMains(t, svc, other.ID); mains != 0 {
		t.Errorf("foreign plot's flags touched: %d mains", mains)
	}
}

func TestReorder(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	c := mustAttachImage(t, svc, plot.ID, "c.jpg", 2)

	err := svc.Reorder(plot.ID, []ImageOrder{
		{ID: c.ID, Order: 0},
		{ID: a.ID, Order: 1, IsMain: true},
		{ID: b.ID, Order: 2},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	// Main first, then the new positions.
	want := []uint{a.ID, c.ID, b.ID}
	for i, id := range want {
		if images[i].ID != id {
			t.Fatalf("position %d: got image %d, want %d (order %v)", i, images[i].ID, id, images)
		}
	}
	if !images[0].IsMain {
		t.Error("flagged image did not become main")
	}
}

func TestReorderPromotesFirstWhenNoneFlagged(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	if err := svc.SetMain(plot.ID, a.ID); err != nil {
		t.Fatalf("SetMain: %v", err)
	}

	err := svc.Reorder(plot.ID, []ImageOrder{
		{ID: b.ID, Order: 0},
		{ID: a.ID, Order: 1},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if images[0].ID != b.ID || !images[0].IsMain {
		t.Errorf("first payload entry %d not promoted, main is %d", b.ID, images[0].ID)
	}
	if mains := countMains(t, svc, plot.ID); mains != 1 {
		t.Errorf("%d main images, want 1", mains)
	}
}

func TestReorderEmptyIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	if err := svc.SetMain(plot.ID, a.ID); err != nil {
		t.Fatalf("SetMain: %v", err)
	}

	if err := svc.Reorder(plot.ID, nil); err != nil {
		t.Fatalf("empty Reorder: %v", err)
	}

	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if images[0].ID != a.ID || !images[0].IsMain {
		t.Errorf("empty reorder moved the main flag off image %d", a.ID)
	}
}

func TestReorderRejectsTwoMains(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)

	err := svc.Reorder(plot.ID, []ImageOrder{
		{ID: a.ID, Order: 0, IsMain: true},
		{ID: b.ID, Order: 1, IsMain: true},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestReorderRejectsForeignImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")
	other := mustCreatePlot(t, db, "other")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	if err := svc.SetMain(plot.ID, a.ID); err != nil {
		t.Fatalf("SetMain: %v", err)
	}
	foreign := mustAttachImage(t, svc, other.ID, "x.jpg", 0)

	err := svc.Reorder(plot.ID, []ImageOrder{
		{ID: a.ID, Order: 0},
		{ID: foreign.ID, Order: 1},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	// The failed transaction must leave the main flag untouched.
	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if !images[0].IsMain || images[0].ID != a.ID {
		t.Errorf("rejected reorder changed flags: main is now %d", images[0].ID)
	}
}

func TestDetachAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	if err := svc.SetMain(plot.ID, a.ID); err != nil {
		t.Fatalf("SetMain: %v", err)
	}

	deleted, err := svc.DetachAndDelete(a.ID)
	if err != nil {
		t.Fatalf("DetachAndDelete: %v", err)
	}
	if !deleted {
		t.Fatal("existing image reported as missing")
	}

	// No replacement main is elected.
	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(images) != 1 || images[0].ID != b.ID {
		t.Fatalf("unexpected images after delete: %v", images)
	}
	if images[0].IsMain {
		t.Error("a new main was elected after deleting the main image")
	}

	if _, err := svc.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted image still readable: %v", err)
	}

	deleted, err = svc.DetachAndDelete(a.ID)
	if err != nil {
		t.Fatalf("second DetachAndDelete: %v", err)
	}
	if deleted {
		t.Error("missing image reported as deleted")
	}
}

func TestListForPlotOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 2)
	b := mustAttachImage(t, svc, plot.ID, "b.jpg", 1)
	c := mustAttachImage(t, svc, plot.ID, "c.jpg", 1)
	if err := svc.SetMain(plot.ID, a.ID); err != nil {
		t.Fatalf("SetMain: %v", err)
	}

	images, err := svc.ListForPlot(plot.ID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	// Main first despite its higher order; equal orders break ties by id.
	want := []uint{a.ID, b.ID, c.ID}
	for i, id := range want {
		if images[i].ID != id {
			t.Fatalf("position %d: got image %d, want %d", i, images[i].ID, id)
		}
	}
}

func TestBelongs(t *testing.T) {
	db := newTestDB(t)
	svc := NewImageService(db)
	plot := mustCreatePlot(t, db, "plot")

	a := mustAttachImage(t, svc, plot.ID, "a.jpg", 0)
	loose, err := svc.Create("loose.jpg", "/images/loose.jpg", -1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tc := range []struct {
		imageID uint
		want    bool
	}{
		{a.ID, true},
		{loose.ID, false},
	} {
		got, err := svc.Belongs(plot.ID, tc.imageID)
		if err != nil {
			t.Fatalf("Belongs(%d): %v", tc.imageID, err)
		}
		if got != tc.want {
			t.Errorf("Belongs(%d) = %v, want %v", tc.imageID, got, tc.want)
		}
	}
}

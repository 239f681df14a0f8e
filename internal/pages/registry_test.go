package pages

import (
	"testing"

	"github.com/pinnote/pinnote/internal/domain"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if reg.Count() != 0 {
		t.Errorf("NewRegistry() should start empty, got %v pages", reg.Count())
	}
	if !reg.LastReload().IsZero() {
		t.Error("NewRegistry() should have zero LastReload before first update")
	}
}

func TestUpdateReplacesWholesale(t *testing.T) {
	reg := NewRegistry()

	reg.Update([]domain.Page{
		{Path: "/contacts", Title: "Contacts"},
	})
	reg.Update([]domain.Page{
		{Path: "/deals", Title: "Deals"},
		{Path: "/reports", Title: "Reports"},
	})

	if reg.Count() != 2 {
		t.Errorf("Update() should replace, got %v pages want 2", reg.Count())
	}
	if _, ok := reg.Get("/contacts"); ok {
		t.Error("Update() should drop pages absent from the new manifest")
	}
}

func TestUpdateKeepsManifestOrder(t *testing.T) {
	reg := NewRegistry()

	reg.Update([]domain.Page{
		{Path: "/deals", Title: "Deals"},
		{Path: "/contacts", Title: "Contacts"},
		{Path: "/reports", Title: "Reports"},
	})

	all := reg.All()
	want := []string{"/deals", "/contacts", "/reports"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %v pages, want %v", len(all), len(want))
	}
	for i, path := range want {
		if all[i].Path != path {
			t.Errorf("All()[%v].Path = %v, want %v", i, all[i].Path, path)
		}
	}
}

func TestUpdateDropsDuplicatePaths(t *testing.T) {
	reg := NewRegistry()

	reg.Update([]domain.Page{
		{Path: "/contacts", Title: "Contacts"},
		{Path: "/contacts", Title: "Contacts again"},
	})

	if reg.Count() != 1 {
		t.Fatalf("Update() kept %v entries for one path, want 1", reg.Count())
	}
	p, _ := reg.Get("/contacts")
	if p.Title != "Contacts" {
		t.Errorf("duplicate path should keep first occurrence, got title %v", p.Title)
	}
}

func TestGet(t *testing.T) {
	reg := NewRegistry()
	reg.Update([]domain.Page{{Path: "/contacts", Title: "Contacts"}})

	p, ok := reg.Get("/contacts")
	if !ok {
		t.Fatal("Get() should find /contacts")
	}
	if p.Title != "Contacts" {
		t.Errorf("Get() Title = %v, want Contacts", p.Title)
	}

	if _, ok := reg.Get("/missing"); ok {
		t.Error("Get() should miss unknown path")
	}
}

func TestUpdateSetsLastReload(t *testing.T) {
	reg := NewRegistry()
	reg.Update([]domain.Page{{Path: "/contacts"}})

	if reg.LastReload().IsZero() {
		t.Error("Update() should set LastReload")
	}
}

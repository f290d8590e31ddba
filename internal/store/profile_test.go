package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RajSapale04/Meditrack/internal/model"
)

func setupProfileTestDB(t *testing.T) (*ProfileStore, *model.User) {
	t.Helper()
	db := openTestDB(t)
	us := NewUserStore(db)
	u, err := us.CreateLocal("owner@example.com", "h", "Owner")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return NewProfileStore(db), u
}

func TestProfileCreate(t *testing.T) {
	ps, u := setupProfileTestDB(t)

	p, err := ps.Create(u.ID, "Emma", 12)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.Name != "Emma" {
		t.Errorf("name = %q, want %q", p.Name, "Emma")
	}
	if p.Age != 12 {
		t.Errorf("age = %d, want 12", p.Age)
	}
	if p.UserID != u.ID {
		t.Errorf("user id = %q, want %q", p.UserID, u.ID)
	}
}

func TestProfileCreateLimit(t *testing.T) {
	ps, u := setupProfileTestDB(t)

	for i := 0; i < model.MaxProfilesPerUser; i++ {
		if _, err := ps.Create(u.ID, fmt.Sprintf("Kid %d", i), 5+i); err != nil {
			t.Fatalf("create profile %d: %v", i, err)
		}
	}

	if _, err := ps.Create(u.ID, "One Too Many", 3); !errors.Is(err, ErrProfileLimit) {
		t.Errorf("err = %v, want ErrProfileLimit", err)
	}

	count, err := ps.Count(u.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != model.MaxProfilesPerUser {
		t.Errorf("count = %d, want %d", count, model.MaxProfilesPerUser)
	}
}

func TestProfileList(t *testing.T) {
	ps, u := setupProfileTestDB(t)

	if _, err := ps.Create(u.ID, "Emma", 12); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := ps.Create(u.ID, "Jack", 8); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	profiles, err := ps.List(u.ID)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("len = %d, want 2", len(profiles))
	}
}

func TestProfileOwnerScoping(t *testing.T) {
	db := openTestDB(t)
	us := NewUserStore(db)
	ps := NewProfileStore(db)

	owner, _ := us.CreateLocal("owner@example.com", "h", "Owner")
	other, _ := us.CreateLocal("other@example.com", "h", "Other")

	p, err := ps.Create(owner.ID, "Emma", 12)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	// Another account sees the profile as missing, not forbidden.
	got, err := ps.GetByID(other.ID, p.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got != nil {
		t.Error("expected nil for foreign-owned profile")
	}

	// A foreign delete is a no-op.
	if err := ps.Delete(other.ID, p.ID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if still, _ := ps.GetByID(owner.ID, p.ID); still == nil {
		t.Error("foreign delete must not remove the profile")
	}
}

func TestProfileUpdate(t *testing.T) {
	ps, u := setupProfileTestDB(t)

	p, err := ps.Create(u.ID, "Emma", 12)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	updated, err := ps.Update(u.ID, p.ID, "Emma", 50)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Emma" {
		t.Errorf("name = %q, want unchanged %q", updated.Name, "Emma")
	}
	if updated.Age != 50 {
		t.Errorf("age = %d, want 50", updated.Age)
	}
}

func TestProfileDelete(t *testing.T) {
	ps, u := setupProfileTestDB(t)

	p, err := ps.Create(u.ID, "Emma", 12)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if err := ps.Delete(u.ID, p.ID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	got, err := ps.GetByID(u.ID, p.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

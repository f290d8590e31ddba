package store

import (
	"testing"

	"github.com/RajSapale04/Meditrack/internal/model"
)

func setupDoctorTestDB(t *testing.T) (*DoctorStore, *model.User) {
	t.Helper()
	db := openTestDB(t)
	us := NewUserStore(db)
	u, err := us.CreateLocal("owner@example.com", "h", "Owner")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return NewDoctorStore(db), u
}

func TestDoctorCreateAndGet(t *testing.T) {
	ds, u := setupDoctorTestDB(t)

	d, err := ds.Create(u.ID, "Dr. Sarah Johnson", "Cardiology", "555-0101", "sjohnson@clinic.example")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	if d.Specialty != "Cardiology" {
		t.Errorf("specialty = %q, want %q", d.Specialty, "Cardiology")
	}

	got, err := ds.GetByID(u.ID, d.ID)
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if got == nil || got.Name != "Dr. Sarah Johnson" {
		t.Errorf("got %+v", got)
	}
}

func TestDoctorListSorted(t *testing.T) {
	ds, u := setupDoctorTestDB(t)

	for _, name := range []string{"Dr. Michael Chen", "Dr. Sarah Johnson", "Dr. Amy Lee"} {
		if _, err := ds.Create(u.ID, name, "", "", ""); err != nil {
			t.Fatalf("create doctor: %v", err)
		}
	}

	doctors, err := ds.List(u.ID)
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	if len(doctors) != 3 {
		t.Fatalf("len = %d, want 3", len(doctors))
	}
	if doctors[0].Name != "Dr. Amy Lee" {
		t.Errorf("first = %q, want sorted by name", doctors[0].Name)
	}
}

func TestDoctorUpdate(t *testing.T) {
	ds, u := setupDoctorTestDB(t)

	d, err := ds.Create(u.ID, "Dr. Sarah Johnson", "Cardiology", "", "")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	updated, err := ds.Update(u.ID, d.ID, "Dr. Sarah Johnson", "Internal Medicine", "555-0102", "")
	if err != nil {
		t.Fatalf("update doctor: %v", err)
	}
	if updated.Specialty != "Internal Medicine" {
		t.Errorf("specialty = %q, want %q", updated.Specialty, "Internal Medicine")
	}
}

func TestDoctorOwnerScoping(t *testing.T) {
	db := openTestDB(t)
	us := NewUserStore(db)
	ds := NewDoctorStore(db)

	owner, _ := us.CreateLocal("owner@example.com", "h", "Owner")
	other, _ := us.CreateLocal("other@example.com", "h", "Other")

	d, err := ds.Create(owner.ID, "Dr. Sarah Johnson", "", "", "")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	got, err := ds.GetByID(other.ID, d.ID)
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if got != nil {
		t.Error("expected nil for foreign-owned doctor")
	}
}

func TestDoctorDelete(t *testing.T) {
	ds, u := setupDoctorTestDB(t)

	d, err := ds.Create(u.ID, "Dr. Sarah Johnson", "", "", "")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	if err := ds.Delete(u.ID, d.ID); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
	got, err := ds.GetByID(u.ID, d.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

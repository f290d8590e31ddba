package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RajSapale04/Meditrack/internal/model"
)

func TestProfileCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")

	req := authedRequest(u, "POST", "/profiles", `{"name":"Grandma","age":72}`)
	rec := httptest.NewRecorder()
	env.profileH.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created model.Profile
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created profile: %v", err)
	}
	if created.Name != "Grandma" || created.Age != 72 {
		t.Errorf("created = %+v, want Grandma/72", created)
	}
	if created.ID == "" {
		t.Error("created profile has empty id")
	}

	req = authedRequest(u, "GET", "/profiles", "")
	rec = httptest.NewRecorder()
	env.profileH.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var profiles []model.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != created.ID {
		t.Errorf("list = %+v, want single profile %s", profiles, created.ID)
	}
}

func TestProfileListEmpty(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")

	req := authedRequest(u, "GET", "/profiles", "")
	rec := httptest.NewRecorder()
	env.profileH.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	// Empty list serializes as [], not null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestProfileLimit(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")

	for i := 0; i < model.MaxProfilesPerUser; i++ {
		req := authedRequest(u, "POST", "/profiles", fmt.Sprintf(`{"name":"Member %d","age":%d}`, i, 10+i))
		rec := httptest.NewRecorder()
		env.profileH.Create(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("profile %d: status = %d, want %d", i, rec.Code, http.StatusCreated)
		}
	}

	req := authedRequest(u, "POST", "/profiles", `{"name":"One Too Many","age":1}`)
	rec := httptest.NewRecorder()
	env.profileH.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if msg := decodeError(t, rec); msg != "Maximum 6 profiles allowed" {
		t.Errorf("error = %q, want %q", msg, "Maximum 6 profiles allowed")
	}

	// The cap is per account, not global.
	other := env.newUser(t, "bob@example.com")
	req = authedRequest(other, "POST", "/profiles", `{"name":"Bobs Kid","age":5}`)
	rec = httptest.NewRecorder()
	env.profileH.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("other account status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestProfileCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"age":10}`},
		{"blank name", `{"name":"  ","age":10}`},
		{"negative age", `{"name":"Kid","age":-1}`},
		{"bad json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(u, "POST", "/profiles", tt.body)
			rec := httptest.NewRecorder()
			env.profileH.Create(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestProfilePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")
	p, err := env.profiles.Create(u.ID, "Grandma", 72)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	// Updating only the age keeps the name.
	req := authedRequest(u, "PUT", "/profiles/"+p.ID, `{"age":73}`)
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	env.profileH.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated model.Profile
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated profile: %v", err)
	}
	if updated.Name != "Grandma" {
		t.Errorf("name = %q, want unchanged %q", updated.Name, "Grandma")
	}
	if updated.Age != 73 {
		t.Errorf("age = %d, want 73", updated.Age)
	}
}

func TestProfileCrossAccountAccess(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newUser(t, "alice@example.com")
	bob := env.newUser(t, "bob@example.com")
	p, err := env.profiles.Create(alice.ID, "Grandma", 72)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	// Another account's profile reads as not-found, whether fetching,
	// updating, or deleting.
	req := authedRequest(bob, "GET", "/profiles/"+p.ID, "")
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	env.profileH.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	req = authedRequest(bob, "PUT", "/profiles/"+p.ID, `{"name":"Hijacked"}`)
	req.SetPathValue("id", p.ID)
	rec = httptest.NewRecorder()
	env.profileH.Update(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	req = authedRequest(bob, "DELETE", "/profiles/"+p.ID, "")
	req.SetPathValue("id", p.ID)
	rec = httptest.NewRecorder()
	env.profileH.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Untouched.
	got, _ := env.profiles.GetByID(alice.ID, p.ID)
	if got == nil || got.Name != "Grandma" {
		t.Errorf("profile changed by another account: %+v", got)
	}
}

func TestProfileDelete(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "alice@example.com")
	p, err := env.profiles.Create(u.ID, "Grandma", 72)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	req := authedRequest(u, "DELETE", "/profiles/"+p.ID, "")
	req.SetPathValue("id", p.ID)
	rec := httptest.NewRecorder()
	env.profileH.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if msg := decodeMessage(t, rec); msg != "Profile deleted successfully" {
		t.Errorf("message = %q, want %q", msg, "Profile deleted successfully")
	}

	got, _ := env.profiles.GetByID(u.ID, p.ID)
	if got != nil {
		t.Error("profile still exists after delete")
	}

	// Deleting a slot frees capacity for a new profile.
	count, _ := env.profiles.Count(u.ID)
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

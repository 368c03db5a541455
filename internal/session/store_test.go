package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/future-self-ai/backend/internal/db"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/persona"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := persona.FromProfile(persona.Profile{Name: "Sara", Age: 22}, "software_engineer")
	sess, err := store.Create(ctx, "software_engineer", p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CareerID != "software_engineer" {
		t.Errorf("career = %q", got.CareerID)
	}
	if got.Persona.Name != "Sara" {
		t.Errorf("persona name = %q", got.Persona.Name)
	}
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSetPersona(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "teacher", persona.Default())
	if err != nil {
		t.Fatal(err)
	}

	updated := persona.FromProfile(persona.Profile{Name: "Omar", Age: 30, YearsExperience: 4}, "teacher")
	if err := store.SetPersona(ctx, sess.ID, updated); err != nil {
		t.Fatalf("set persona: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Persona.Name != "Omar" {
		t.Errorf("persona name = %q after update", got.Persona.Name)
	}

	if err := store.SetPersona(ctx, "missing", updated); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTurnsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "doctor", persona.Default())
	if err != nil {
		t.Fatal(err)
	}

	turns := []llm.Message{
		{Role: llm.RoleUser, Content: "hello"},
		{Role: llm.RoleAssistant, Content: "hey, future you here"},
		{Role: llm.RoleUser, Content: "how was med school?"},
		{Role: llm.RoleAssistant, Content: "brutal but worth it"},
		{Role: llm.RoleUser, Content: "what about residency?"},
	}
	for _, turn := range turns {
		if err := store.AddTurn(ctx, sess.ID, turn.Role, turn.Content); err != nil {
			t.Fatalf("add turn: %v", err)
		}
	}

	got, err := store.LastTurns(ctx, sess.ID, 3)
	if err != nil {
		t.Fatalf("last turns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d turns, want 3", len(got))
	}
	// Chronological order, most recent three.
	want := turns[2:]
	for i := range want {
		if got[i].Content != want[i].Content || got[i].Role != want[i].Role {
			t.Errorf("turn %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	n, err := store.TurnCount(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(turns) {
		t.Errorf("turn count = %d, want %d", n, len(turns))
	}
}

func TestLastTurnsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "teacher", persona.Default())
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.LastTurns(ctx, sess.ID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no turns, got %d", len(got))
	}
	if got, _ := store.LastTurns(ctx, sess.ID, 0); got != nil {
		t.Error("n=0 should return nil")
	}
}

func TestResumeProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "software_engineer", persona.Default())
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.ResumeProfile(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before save, got %v", err)
	}

	if err := store.SaveResumeProfile(ctx, sess.ID, []string{"Go", "Python"}, 4); err != nil {
		t.Fatal(err)
	}
	skills, years, err := store.ResumeProfile(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if years != 4 {
		t.Errorf("years = %d, want 4", years)
	}
	if len(skills) != 2 || skills[0] != "Go" || skills[1] != "Python" {
		t.Errorf("skills = %v", skills)
	}

	// Re-analysis replaces the stored profile.
	if err := store.SaveResumeProfile(ctx, sess.ID, []string{"Rust"}, 6); err != nil {
		t.Fatal(err)
	}
	skills, years, err = store.ResumeProfile(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if years != 6 || len(skills) != 1 || skills[0] != "Rust" {
		t.Errorf("replaced profile = %v, %d", skills, years)
	}
}

func TestDeleteIdle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "teacher", persona.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddTurn(ctx, sess.ID, llm.RoleUser, "hi"); err != nil {
		t.Fatal(err)
	}

	// Nothing is older than an hour yet.
	n, err := store.DeleteIdle(ctx, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("deleted %d sessions, want 0", n)
	}

	// A negative max age treats everything as idle.
	n, err = store.DeleteIdle(ctx, -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}
}

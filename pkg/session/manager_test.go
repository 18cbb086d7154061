package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/session"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func TestManagerLifecycle(t *testing.T) {
	m := session.NewManager(testsupport.Reader(t), session.WithIDGenerator(func() string { return "s1" }))

	view, err := m.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.ID != "s1" || m.Len() != 1 {
		t.Fatalf("unexpected session %q (len %d)", view.ID, m.Len())
	}
	if _, err := m.Create(context.Background()); !errors.Is(err, session.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	err = m.Do("s1", func(s *session.Session) error {
		_, err := s.Answer(session.TargetLead, "hopital", model.Text("Paleto Medical Center"))
		return err
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	view, err = m.View("s1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Lead.Text == "" {
		t.Fatalf("expected lead text after answer")
	}

	if !m.Delete("s1") || m.Delete("s1") {
		t.Fatalf("expected delete to succeed once")
	}
	if _, err := m.View("s1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerConcurrentCreateKeepsFirstSession(t *testing.T) {
	m := session.NewManager(testsupport.Reader(t), session.WithIDGenerator(func() string { return "dup" }))

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		clashes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create(context.Background())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, session.ErrSessionExists):
				clashes++
			default:
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || clashes != n-1 {
		t.Fatalf("expected 1 session and %d clashes, got %d and %d", n-1, created, clashes)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one live session, got %d", m.Len())
	}

	err := m.Do("dup", func(s *session.Session) error {
		_, err := s.Answer(session.TargetLead, "hopital", model.Text("Paleto Medical Center"))
		return err
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if _, err := m.Create(context.Background()); !errors.Is(err, session.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
	view, err := m.View("dup")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Lead.Text == "" {
		t.Fatalf("expected the first session to keep its answers")
	}
}

func TestManagerSerialisesSessionAccess(t *testing.T) {
	m := session.NewManager(testsupport.Reader(t))
	view, err := m.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Do(view.ID, func(s *session.Session) error {
				_, err := s.AddInstance(context.Background(), "plaie")
				return err
			})
			if err != nil {
				t.Errorf("do: %v", err)
			}
		}()
	}
	wg.Wait()

	view, err = m.View(view.ID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Instances) != 20 {
		t.Fatalf("expected 20 instances, got %d", len(view.Instances))
	}
}

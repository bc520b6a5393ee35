package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Medinhoo/liar/internal/deck"
)

func TestCreateRoom(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")

	if len(code) != codeLength {
		t.Fatalf("room code %q has length %d; want %d", code, len(code), codeLength)
	}
	for _, ch := range code {
		if !strings.ContainsRune(codeAlphabet, ch) {
			t.Fatalf("room code %q contains %q", code, ch)
		}
	}

	if r.Len() != 1 {
		t.Fatalf("registry len = %d; want 1", r.Len())
	}
	if got, ok := r.RoomOf("p1"); !ok || got != code {
		t.Fatalf("RoomOf(p1) = %q, %v", got, ok)
	}

	s := r.rooms[code]
	if len(s.players) != 1 || !s.players[0].isHost {
		t.Fatal("room should hold exactly one host player")
	}
	if s.started || len(s.pile) != 0 || s.lastPlay != nil {
		t.Fatal("fresh room should be idle and empty")
	}
}

func TestJoinRoom(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")

	if err := r.JoinRoom("NOSUCH", "p2", "Bob"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if err := r.JoinRoom(code, "p2", "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := r.JoinRoom(code, "p2", "Bob again"); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}

	// join order defines turn order
	s := r.rooms[code]
	if s.players[0].id != "p1" || s.players[1].id != "p2" {
		t.Fatal("join order not preserved")
	}
	if s.players[1].isHost {
		t.Fatal("joined player must not be host")
	}
}

func TestJoinRoomWhileSeatedElsewhere(t *testing.T) {
	r := NewRegistry()
	codeA := r.CreateRoom("p1", "Alice")
	codeB := r.CreateRoom("p2", "Bob")

	if err := r.JoinRoom(codeA, "p3", "Carol"); err != nil {
		t.Fatalf("join A: %v", err)
	}
	if err := r.JoinRoom(codeB, "p3", "Carol"); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom, got %v", err)
	}

	// the seat index still points at the first room
	if got, ok := r.RoomOf("p3"); !ok || got != codeA {
		t.Fatalf("RoomOf(p3) = %q, %v; want %q", got, ok, codeA)
	}
	if len(r.rooms[codeB].players) != 1 {
		t.Fatal("second room gained a seat")
	}
}

func TestJoinRoomFull(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")
	for i := 2; i <= MaxPlayers; i++ {
		if err := r.JoinRoom(code, fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i)); err != nil {
			t.Fatalf("join p%d: %v", i, err)
		}
	}

	if err := r.JoinRoom(code, "p5", "Latecomer"); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestJoinRoomAfterStart(t *testing.T) {
	r, code := startedPair(t)

	if err := r.JoinRoom(code, "p3", "Carol"); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Fatalf("expected ErrGameAlreadyStarted, got %v", err)
	}
}

func TestStartGame(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")

	if err := r.StartGame("NOSUCH"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if err := r.StartGame(code); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}

	if err := r.JoinRoom(code, "p2", "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := r.StartGame(code); err != nil {
		t.Fatalf("start: %v", err)
	}

	s := r.rooms[code]
	if !s.started || s.currentPlayerIndex != 0 {
		t.Fatal("started game should begin at seat 0")
	}
	for _, p := range s.players {
		if len(p.hand) != deck.Size/2 {
			t.Fatalf("hand of %s = %d cards; want %d", p.name, len(p.hand), deck.Size/2)
		}
	}

	// a session transitions to started exactly once
	if err := r.StartGame(code); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Fatalf("expected ErrGameAlreadyStarted, got %v", err)
	}
}

func TestRemovePlayerUnknown(t *testing.T) {
	r := NewRegistry()
	if dep := r.RemovePlayer("ghost"); dep != nil {
		t.Fatalf("expected nil departure, got %+v", dep)
	}
}

func TestRemovePlayerGuestBeforeStart(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")
	if err := r.JoinRoom(code, "p2", "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	dep := r.RemovePlayer("p2")
	if dep == nil || dep.Destroyed {
		t.Fatalf("room should survive a guest leaving pre-start: %+v", dep)
	}
	if dep.PlayerName != "Bob" || dep.RoomCode != code {
		t.Fatalf("departure = %+v", dep)
	}
	if len(dep.Remaining) != 1 || dep.Remaining[0] != "p1" {
		t.Fatalf("remaining = %v", dep.Remaining)
	}

	if r.Len() != 1 {
		t.Fatal("room was destroyed")
	}
	if _, ok := r.RoomOf("p2"); ok {
		t.Fatal("p2 still indexed after leaving")
	}

	// the seat is gone, so Bob can join again
	if err := r.JoinRoom(code, "p2", "Bob"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func TestRemoveHostDestroysRoom(t *testing.T) {
	r := NewRegistry()
	code := r.CreateRoom("p1", "Alice")
	if err := r.JoinRoom(code, "p2", "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	dep := r.RemovePlayer("p1")
	if dep == nil || !dep.Destroyed {
		t.Fatalf("host leaving pre-start must destroy the room: %+v", dep)
	}
	if r.Len() != 0 {
		t.Fatal("room still registered")
	}
	if _, ok := r.RoomOf("p2"); ok {
		t.Fatal("p2 still indexed after room destruction")
	}
}

func TestRemovePlayerAfterStart(t *testing.T) {
	r, code := startedPair(t)

	dep := r.RemovePlayer("p2")
	if dep == nil || !dep.Destroyed {
		t.Fatalf("anyone leaving post-start must destroy the room: %+v", dep)
	}
	if !dep.Started || dep.PlayerCount != 2 {
		t.Fatalf("departure = %+v", dep)
	}
	if _, err := r.Project(code, "p1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound after destruction, got %v", err)
	}
}

func TestConcurrentRooms(t *testing.T) {
	r := NewRegistry()

	const n = 50
	codes := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = r.CreateRoom(fmt.Sprintf("host%d", i), "Host")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, code := range codes {
		if seen[code] {
			t.Fatalf("room code %q allocated twice", code)
		}
		seen[code] = true
	}
	if r.Len() != n {
		t.Fatalf("registry len = %d; want %d", r.Len(), n)
	}
}

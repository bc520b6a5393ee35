package game

import (
	"testing"

	"github.com/Medinhoo/liar/internal/deck"
)

func TestProjectHidesOpponentHands(t *testing.T) {
	r, code := startedPair(t)
	rig(r, code,
		cards(t, "hearts-K", "spades-2"),
		cards(t, "clubs-7", "diamonds-J", "hearts-9"),
	)

	view, err := r.Project(code, "p1")
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if view.RoomCode != code || !view.Started {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Players) != 2 {
		t.Fatalf("players = %d; want 2", len(view.Players))
	}

	me, other := view.Players[0], view.Players[1]
	if len(me.Hand) != 2 || me.CardCount != 2 {
		t.Fatalf("own hand not visible: %+v", me)
	}
	if len(other.Hand) != 0 {
		t.Fatalf("opponent hand leaked: %+v", other.Hand)
	}
	if other.CardCount != 3 {
		t.Fatalf("opponent card count = %d; want 3", other.CardCount)
	}
	if !me.IsHost || other.IsHost {
		t.Fatal("host flags wrong")
	}
	if view.CurrentPlayer != "Alice" {
		t.Fatalf("current player = %q; want Alice", view.CurrentPlayer)
	}
}

func TestProjectHidesPendingPlay(t *testing.T) {
	r, code := startedPair(t)
	rig(r, code,
		cards(t, "hearts-K", "spades-2"),
		cards(t, "clubs-7"),
	)

	if err := r.PlayCards(code, "p1", []string{"spades-2"}, deck.King); err != nil {
		t.Fatalf("play: %v", err)
	}

	// even a prospective accuser only sees the claim, never the cards
	for _, viewer := range []string{"p1", "p2"} {
		view, err := r.Project(code, viewer)
		if err != nil {
			t.Fatalf("project %s: %v", viewer, err)
		}
		lp := view.LastPlay
		if lp == nil {
			t.Fatalf("viewer %s: last play missing", viewer)
		}
		if lp.PlayerName != "Alice" || lp.DeclaredRank != deck.King || lp.CardCount != 1 {
			t.Fatalf("viewer %s: last play = %+v", viewer, lp)
		}
	}

	view, _ := r.Project(code, "p2")
	if view.PileCount != 1 {
		t.Fatalf("pile count = %d; want 1", view.PileCount)
	}
}

func TestProjectIsPure(t *testing.T) {
	r, code := startedPair(t)
	s := r.rooms[code]

	before := len(s.players[1].hand)
	if _, err := r.Project(code, "p1"); err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(s.players[1].hand) != before {
		t.Fatal("projection mutated the canonical session")
	}

	// mutating the viewer's projected hand must not touch the session
	view, _ := r.Project(code, "p1")
	if len(view.Players[0].Hand) == 0 {
		t.Fatal("expected a dealt hand")
	}
	view.Players[0].Hand[0] = deck.Card{ID: "fake"}
	if s.players[0].hand[0].ID == "fake" {
		t.Fatal("projection shares backing storage with the session")
	}
}

func TestProjectWinner(t *testing.T) {
	r, code := startedPair(t)
	rig(r, code,
		cards(t, "hearts-K"),
		cards(t, "clubs-7"),
	)

	if err := r.PlayCards(code, "p1", []string{"hearts-K"}, deck.King); err != nil {
		t.Fatalf("play: %v", err)
	}

	view, err := r.Project(code, "p2")
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if view.WinnerName != "Alice" {
		t.Fatalf("winner = %q; want Alice", view.WinnerName)
	}
}

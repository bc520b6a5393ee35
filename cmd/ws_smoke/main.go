package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke client: authenticates two guests, creates a room, joins it,
// starts a game, plays one truthful card and challenges it. Run against
// a live server to eyeball the event flow.

type event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func main() {
	base := os.Getenv("SMOKE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	wsBase := strings.Replace(base, "http", "ws", 1)

	tokenA := auth(base, "smokeA")
	tokenB := auth(base, "smokeB")

	connA, chA := dial(wsBase, tokenA)
	defer connA.Close()
	connB, chB := dial(wsBase, tokenB)
	defer connB.Close()

	send(connA, "create_room", nil)
	created := waitFor(chA, "room_created")

	var room struct {
		RoomCode string `json:"room_code"`
	}
	must(json.Unmarshal(created, &room))
	fmt.Println("room:", room.RoomCode)

	send(connB, "join_room", map[string]any{"room_code": room.RoomCode})
	waitFor(chB, "room_joined")
	waitFor(chA, "player_joined")

	send(connA, "start_game", nil)
	started := waitFor(chA, "game_started")
	waitFor(chB, "game_started")

	var state struct {
		State struct {
			Players []struct {
				ID   string `json:"id"`
				Hand []struct {
					ID   string `json:"id"`
					Rank string `json:"value"`
				} `json:"hand"`
			} `json:"players"`
		} `json:"state"`
	}
	must(json.Unmarshal(started, &state))

	var cardID, rank string
	for _, p := range state.State.Players {
		if len(p.Hand) > 0 {
			cardID = p.Hand[0].ID
			rank = p.Hand[0].Rank
			break
		}
	}
	if cardID == "" {
		log.Fatal("no hand in game_started state")
	}
	fmt.Println("playing:", cardID, "declared:", rank)

	send(connA, "play_cards", map[string]any{"card_ids": []string{cardID}, "declared_rank": rank})
	waitFor(chB, "cards_played")

	send(connB, "call_liar", nil)
	waitFor(chA, "liar_called")
	result := waitFor(chB, "liar_result")
	fmt.Println("liar_result:", string(result))
}

func auth(base, name string) string {
	body, _ := json.Marshal(map[string]string{"name": name})
	resp, err := http.Post(base+"/api/v1/auth", "application/json", bytes.NewReader(body))
	must(err)
	defer resp.Body.Close()

	var out struct {
		Token string `json:"token"`
	}
	must(json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func dial(wsBase, token string) (*websocket.Conn, chan event) {
	conn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+token, nil)
	must(err)

	out := make(chan event, 32)
	go func() {
		defer close(out)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var e event
			if json.Unmarshal(msg, &e) == nil {
				out <- e
			}
		}
	}()
	return conn, out
}

func send(conn *websocket.Conn, msgType string, payload any) {
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	data, _ := json.Marshal(msg)
	must(conn.WriteMessage(websocket.TextMessage, data))
}

func waitFor(ch chan event, msgType string) json.RawMessage {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				log.Fatalf("connection closed while waiting for %s", msgType)
			}
			if e.Type == msgType {
				return e.Payload
			}
			fmt.Println("event:", e.Type)
		case <-deadline:
			log.Fatalf("timed out waiting for %s", msgType)
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

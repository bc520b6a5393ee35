package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Medinhoo/liar/internal/deck"
	"github.com/Medinhoo/liar/internal/domain"
	"github.com/Medinhoo/liar/internal/game"
	"github.com/Medinhoo/liar/internal/logger"
	"github.com/Medinhoo/liar/internal/repository"
)

// Hub routes player intents from connected clients into the room
// registry and fans projections back out. The registry serializes all
// state changes per room; the hub only ever sees snapshots.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	registry    *game.Registry
	matches     *repository.MatchRepository // nil disables match history
	revealDelay time.Duration
}

func NewHub(registry *game.Registry, matches *repository.MatchRepository, revealDelay time.Duration) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		registry:    registry,
		matches:     matches,
		revealDelay: revealDelay,
	}
}

// Register adds a connected client. A player id can hold at most one
// live connection.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[c.PlayerID]; exists {
		return false
	}
	h.clients[c.PlayerID] = c
	ConnectedClients.Set(float64(len(h.clients)))
	return true
}

// OnDisconnect vacates the player's seat. A started room, or a room
// whose host leaves, cannot continue and is destroyed; everyone left
// behind is told the room ended.
func (h *Hub) OnDisconnect(c *Client) {
	h.mu.Lock()
	if h.clients[c.PlayerID] == c {
		delete(h.clients, c.PlayerID)
	}
	ConnectedClients.Set(float64(len(h.clients)))
	h.mu.Unlock()

	dep := h.registry.RemovePlayer(c.PlayerID)
	if dep == nil {
		return
	}

	logger.Info("player left", "player", c.PlayerID, "room", dep.RoomCode, "destroyed", dep.Destroyed)

	if !dep.Destroyed {
		for _, pid := range dep.Remaining {
			view, err := h.registry.Project(dep.RoomCode, pid)
			if err != nil {
				continue
			}
			h.send(pid, Message{Type: MsgPlayerLeft, Payload: StatePayload{State: view}})
		}
		return
	}

	for _, pid := range dep.Remaining {
		h.send(pid, Message{Type: MsgRoomEnded, Payload: RoomEndedPayload{
			Message: "A player disconnected. The game is over.",
		}})
	}
	ActiveRooms.Set(float64(h.registry.Len()))

	if dep.Started {
		h.recordMatch(dep)
	}
}

// HandleMessage dispatches one inbound frame. Malformed frames are
// answered with an error event and never reach the game core.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(c, "bad_request", "invalid message")
		return
	}

	switch env.Type {
	case MsgCreateRoom:
		h.handleCreateRoom(c)
	case MsgJoinRoom:
		h.handleJoinRoom(c, env.Payload)
	case MsgStartGame:
		h.handleStartGame(c)
	case MsgPlayCards:
		h.handlePlayCards(c, env.Payload)
	case MsgCallLiar:
		h.handleCallLiar(c)
	default:
		h.sendError(c, "bad_request", "unknown message type")
	}
}

func (h *Hub) handleCreateRoom(c *Client) {
	if _, seated := h.registry.RoomOf(c.PlayerID); seated {
		Intents.WithLabelValues(MsgCreateRoom, "already_in_room").Inc()
		h.sendError(c, "already_in_room", "leave your current room first")
		return
	}

	code := h.registry.CreateRoom(c.PlayerID, c.Name)
	RoomsCreated.Inc()
	ActiveRooms.Set(float64(h.registry.Len()))
	Intents.WithLabelValues(MsgCreateRoom, "ok").Inc()

	logger.Info("room created", "room", code, "host", c.PlayerID)

	view, err := h.registry.Project(code, c.PlayerID)
	if err != nil {
		return
	}
	h.send(c.PlayerID, Message{Type: MsgRoomCreated, Payload: RoomCreatedPayload{RoomCode: code, State: view}})
}

func (h *Hub) handleJoinRoom(c *Client, raw json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.RoomCode == "" {
		h.sendError(c, "bad_request", "room code is required")
		return
	}
	if _, seated := h.registry.RoomOf(c.PlayerID); seated {
		Intents.WithLabelValues(MsgJoinRoom, "already_in_room").Inc()
		h.sendError(c, "already_in_room", "leave your current room first")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(p.RoomCode))
	if err := h.registry.JoinRoom(code, c.PlayerID, c.Name); err != nil {
		Intents.WithLabelValues(MsgJoinRoom, game.Code(err)).Inc()
		h.sendError(c, game.Code(err), err.Error())
		return
	}
	Intents.WithLabelValues(MsgJoinRoom, "ok").Inc()

	logger.Info("player joined", "room", code, "player", c.PlayerID)

	for _, pid := range h.registry.PlayerIDs(code) {
		view, err := h.registry.Project(code, pid)
		if err != nil {
			continue
		}
		if pid == c.PlayerID {
			h.send(pid, Message{Type: MsgRoomJoined, Payload: RoomJoinedPayload{RoomCode: code, State: view}})
			continue
		}
		h.send(pid, Message{Type: MsgPlayerJoined, Payload: PlayerJoinedPayload{PlayerName: c.Name, State: view}})
	}
}

func (h *Hub) handleStartGame(c *Client) {
	code, ok := h.registry.RoomOf(c.PlayerID)
	if !ok {
		h.sendError(c, game.Code(game.ErrRoomNotFound), game.ErrRoomNotFound.Error())
		return
	}

	if err := h.registry.StartGame(code); err != nil {
		Intents.WithLabelValues(MsgStartGame, game.Code(err)).Inc()
		h.sendError(c, game.Code(err), err.Error())
		return
	}
	Intents.WithLabelValues(MsgStartGame, "ok").Inc()

	logger.Info("game started", "room", code)
	h.broadcastState(code, MsgGameStarted)
}

func (h *Hub) handlePlayCards(c *Client, raw json.RawMessage) {
	var p PlayCardsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "bad_request", "invalid payload")
		return
	}
	if len(p.CardIDs) == 0 {
		h.sendError(c, "bad_request", "at least one card is required")
		return
	}
	declared := deck.Rank(p.DeclaredRank)
	if !deck.ValidRank(declared) {
		h.sendError(c, "bad_request", "invalid declared rank")
		return
	}

	code, ok := h.registry.RoomOf(c.PlayerID)
	if !ok {
		h.sendError(c, game.Code(game.ErrRoomNotFound), game.ErrRoomNotFound.Error())
		return
	}

	if err := h.registry.PlayCards(code, c.PlayerID, p.CardIDs, declared); err != nil {
		Intents.WithLabelValues(MsgPlayCards, game.Code(err)).Inc()
		h.sendError(c, game.Code(err), err.Error())
		return
	}
	Intents.WithLabelValues(MsgPlayCards, "ok").Inc()

	h.broadcastState(code, MsgCardsPlayed)

	if winner, ok := h.registry.Winner(code); ok {
		logger.Info("game won", "room", code, "winner", winner)
		h.broadcast(code, Message{Type: MsgGameWon, Payload: GameWonPayload{WinnerName: winner}})
	}
}

func (h *Hub) handleCallLiar(c *Client) {
	code, ok := h.registry.RoomOf(c.PlayerID)
	if !ok {
		h.sendError(c, game.Code(game.ErrRoomNotFound), game.ErrRoomNotFound.Error())
		return
	}

	result, err := h.registry.CallLiar(code, c.PlayerID)
	if err != nil {
		Intents.WithLabelValues(MsgCallLiar, game.Code(err)).Inc()
		h.sendError(c, game.Code(err), err.Error())
		return
	}
	Intents.WithLabelValues(MsgCallLiar, "ok").Inc()
	verdict := "truth"
	if result.WasLiar {
		verdict = "liar"
	}
	Challenges.WithLabelValues(verdict).Inc()

	logger.Info("liar called", "room", code, "accuser", c.PlayerID, "was_liar", result.WasLiar)

	h.broadcast(code, Message{Type: MsgLiarCalled, Payload: LiarCalledPayload{AccuserName: c.Name}})

	// The state is already resolved; the reveal is held back for drama.
	// The room rejects new play and challenge intents until FinishReveal.
	time.AfterFunc(h.revealDelay, func() {
		for _, pid := range h.registry.PlayerIDs(code) {
			view, err := h.registry.Project(code, pid)
			if err != nil {
				continue
			}
			h.send(pid, Message{Type: MsgLiarResult, Payload: LiarResultPayload{
				ChallengeResult: *result,
				State:           view,
			}})
		}
		h.registry.FinishReveal(code)

		if winner, ok := h.registry.Winner(code); ok {
			logger.Info("game won", "room", code, "winner", winner)
			h.broadcast(code, Message{Type: MsgGameWon, Payload: GameWonPayload{WinnerName: winner}})
		}
	})
}

// broadcastState sends one redacted snapshot per seated player.
func (h *Hub) broadcastState(code, msgType string) {
	for _, pid := range h.registry.PlayerIDs(code) {
		view, err := h.registry.Project(code, pid)
		if err != nil {
			continue
		}
		h.send(pid, Message{Type: msgType, Payload: StatePayload{State: view}})
	}
}

// broadcast sends the same message to every seated player.
func (h *Hub) broadcast(code string, msg Message) {
	for _, pid := range h.registry.PlayerIDs(code) {
		h.send(pid, msg)
	}
}

func (h *Hub) send(playerID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("marshal message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	c, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case c.Send <- data:
	default:
		logger.Warn("dropping message, send buffer full", "player", playerID, "type", msg.Type)
	}
}

func (h *Hub) sendError(c *Client, code, message string) {
	h.send(c.PlayerID, Message{Type: MsgError, Payload: ErrorPayload{Code: code, Message: message}})
}

func (h *Hub) recordMatch(dep *game.Departure) {
	if h.matches == nil {
		return
	}

	m := &domain.Match{
		RoomCode:    dep.RoomCode,
		PlayerCount: dep.PlayerCount,
		Challenges:  dep.Challenges,
		Outcome:     domain.MatchOutcomePlayerLeft,
		StartedAt:   dep.StartedAt,
		EndedAt:     time.Now(),
	}
	if dep.WinnerName != "" {
		winner := dep.WinnerName
		m.WinnerName = &winner
		m.Outcome = domain.MatchOutcomeVictory
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.matches.Create(ctx, m); err != nil {
			logger.Error("record match", "room", m.RoomCode, "error", err)
		}
	}()
}

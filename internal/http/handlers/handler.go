package handlers

import "github.com/Medinhoo/liar/internal/game"

type Handler struct {
	Registry *game.Registry
}

func NewHandler(registry *game.Registry) *Handler {
	return &Handler{Registry: registry}
}

package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	ActiveRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "liar_active_rooms",
			Help: "Number of live rooms in the registry",
		},
	)
	ConnectedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "liar_connected_clients",
			Help: "Number of connected websocket clients",
		},
	)
	RoomsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liar_rooms_created_total",
			Help: "Total rooms created",
		},
	)
	Intents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liar_intents_total",
			Help: "Player intents processed, by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)
	Challenges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liar_challenges_total",
			Help: "Resolved challenges, by verdict",
		},
		[]string{"verdict"},
	)
)

func init() {
	prometheus.MustRegister(ActiveRooms)
	prometheus.MustRegister(ConnectedClients)
	prometheus.MustRegister(RoomsCreated)
	prometheus.MustRegister(Intents)
	prometheus.MustRegister(Challenges)
}

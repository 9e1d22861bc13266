package arena

import "github.com/prometheus/client_golang/prometheus"

var (
	connectedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arena_connected_players",
		Help: "Number of identities with a registered outbound handle",
	})

	liveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arena_live_sessions",
		Help: "Number of sessions currently in the directory",
	})

	movesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_moves_total",
		Help: "Move submissions by outcome",
	}, []string{"result"})

	gamesFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_games_finished_total",
		Help: "Finished games by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(connectedPlayers)
	prometheus.MustRegister(liveSessions)
	prometheus.MustRegister(movesTotal)
	prometheus.MustRegister(gamesFinished)
}

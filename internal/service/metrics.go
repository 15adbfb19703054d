package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contributionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contributions_recorded_total",
		Help: "Total number of user contributions persisted",
	})
	challengesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "team_challenges_completed_total",
		Help: "Total number of team challenges flipped to completed",
	})
	streaksReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "team_streaks_reset_total",
		Help: "Total number of team streaks reset by the streak updater",
	})
)

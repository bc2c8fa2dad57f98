package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// RemoteFallbacks counts remote store failures that were served from the local cache.
var RemoteFallbacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "nutritrack",
		Name:      "remote_fallbacks_total",
		Help:      "Remote store calls that failed and fell back to the local cache.",
	},
	[]string{"store", "op"},
)

// EventPublisher delivers events to a user's open realtime connections.
type EventPublisher interface {
	Publish(userID string, ev models.Event)
}

// store holds what every remote-with-local-fallback service shares.
type store struct {
	name   string
	log    *logrus.Logger
	events EventPublisher
}

func (s *store) fallback(op string, err error, fields logrus.Fields) {
	RemoteFallbacks.WithLabelValues(s.name, op).Inc()
	s.log.WithError(err).
		WithFields(fields).
		WithFields(logrus.Fields{"store": s.name, "op": op}).
		Warn("remote store failed, using local cache")
}

// cacheErr logs a failed local write-through; the remote result still stands.
func (s *store) cacheErr(op string, err error) {
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		s.log.WithError(err).WithFields(logrus.Fields{"store": s.name, "op": op}).Error("local cache write failed")
	}
}

func (s *store) publish(userID, kind string, data any) {
	if s.events == nil {
		return
	}
	s.events.Publish(userID, models.Event{Kind: kind, Data: data, CreatedAt: time.Now()})
}

func validDate(d string) bool {
	_, err := time.Parse(dateLayout, d)
	return err == nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

const maxRangeDays = 366

// dateRange lists every date from..to inclusive, oldest first.
func dateRange(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, invalid("Invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, invalid("Invalid end date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, invalid("Start date must not be after end date")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, invalid("Date range is too long")
	}
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dateLayout))
	}
	return out, nil
}

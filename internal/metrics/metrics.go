package metrics

import (
	"net/http"
	"time"

	"armory-server/internal/inventory"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "armory"

// Collector - метрики сервера. Реализует inventory.Observer, один экземпляр
// разделяется между инвентарями всех игроков.
type Collector struct {
	registry *prometheus.Registry

	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	aborted  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	commands *prometheus.CounterVec

	players prometheus.Gauge
	drops   prometheus.Gauge
	tick    prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "phases_started_total",
			Help: "Transition phases started, by state.",
		}, []string{"state"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "phases_finished_total",
			Help: "Transition phases completed, by state.",
		}, []string{"state"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "transitions_aborted_total",
			Help: "Transitions aborted back to idle, by state at abort.",
		}, []string{"state"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "requests_rejected_total",
			Help: "Rejected inventory requests, by operation.",
		}, []string{"op"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "engine", Name: "commands_total",
			Help: "Client commands executed, by action.",
		}, []string{"action"}),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "engine", Name: "players",
			Help: "Players currently in game.",
		}),
		drops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "world", Name: "drops",
			Help: "Weapons lying in the world.",
		}),
		tick: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "engine", Name: "tick_seconds",
			Help:    "Time spent simulating one tick.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}
	c.registry.MustRegister(
		c.started, c.finished, c.aborted, c.rejected, c.commands,
		c.players, c.drops, c.tick,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// HubStats - то, что метрики читают у рассыльщика HUD (network.Broadcaster).
type HubStats interface {
	SubscriberCount() int
	Dropped() uint64
}

// WatchHub регистрирует метрики рассыльщика. Значения читаются при сборе.
// Повторная регистрация на том же Collector возвращает ошибку.
func (c *Collector) WatchHub(h HubStats) error {
	subs := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "hub", Name: "subscribers",
		Help: "HUD subscribers (websocket clients and bots).",
	}, func() float64 { return float64(h.SubscriberCount()) })
	dropped := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "hub", Name: "dropped_total",
		Help: "HUD messages dropped because a subscriber buffer was full.",
	}, func() float64 { return float64(h.Dropped()) })

	if err := c.registry.Register(subs); err != nil {
		return errors.Wrap(err, "register hub subscribers")
	}
	if err := c.registry.Register(dropped); err != nil {
		c.registry.Unregister(subs)
		return errors.Wrap(err, "register hub dropped")
	}
	return nil
}

// Handler - /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// --- inventory.Observer ---

func (c *Collector) TransitionStarted(s inventory.State) { c.started.WithLabelValues(s.String()).Inc() }

func (c *Collector) TransitionFinished(s inventory.State) { c.finished.WithLabelValues(s.String()).Inc() }

func (c *Collector) TransitionAborted(s inventory.State) { c.aborted.WithLabelValues(s.String()).Inc() }

func (c *Collector) RequestRejected(op string) { c.rejected.WithLabelValues(op).Inc() }

// --- движок ---

func (c *Collector) CommandExecuted(action string) { c.commands.WithLabelValues(action).Inc() }

func (c *Collector) SetPlayers(n int) { c.players.Set(float64(n)) }

func (c *Collector) SetDrops(n int) { c.drops.Set(float64(n)) }

func (c *Collector) ObserveTick(d time.Duration) { c.tick.Observe(d.Seconds()) }

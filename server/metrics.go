package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bstviz_operations_total",
	Help: "The total number of animated operations by outcome",
}, []string{"op", "outcome"})

var operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "bstviz_operation_duration_seconds",
	Help:    "Wall clock duration of animated operations, pauses included",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"op"})

var framesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bstviz_frames_total",
	Help: "The total number of frames emitted",
}, []string{"op"})

var listenersGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "bstviz_listeners",
	Help: "Number of connected websocket listeners",
})

var droppedListeners = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bstviz_dropped_listeners_total",
	Help: "Listeners disconnected because they fell behind",
})

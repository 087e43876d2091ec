package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xrbtree/rbtree"
)

type rbTreeStats struct {
	keyCount       metric.Int64UpDownCounter
	insertCount    metric.Int64Counter
	removeCount    metric.Int64Counter
	rotateCount    metric.Int64Counter
	rebalanceSteps metric.Int64Histogram
}

func (stats *rbTreeStats) RecordKeyCount(delta int64) {
	if stats == nil {
		return
	}
	stats.keyCount.Add(context.Background(), delta)
}

func (stats *rbTreeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseRemoveCount() {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseRotateCount(direction string) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("rbtree.rotate.direction", direction),
	)
	stats.rotateCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func (stats *rbTreeStats) RecordRebalanceSteps(op string, steps int64) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("rbtree.rebalance.op", op),
	)
	stats.rebalanceSteps.Record(context.Background(), steps, metric.WithAttributeSet(as))
}

func newRBTreeStats(name string, provider metric.MeterProvider) *rbTreeStats {
	if len(strings.TrimSpace(name)) == 0 {
		name = "default"
	}
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(fmt.Sprintf("%s/%s", RBTreeStatsName, name))
	return &rbTreeStats{
		keyCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"rbtree.key.count",
			metric.WithDescription("The number of keys in the rbtree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.insert.count",
			metric.WithDescription("The number of keys inserted into the rbtree."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.remove.count",
			metric.WithDescription("The number of keys removed from the rbtree."),
		)),
		rotateCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotate.count",
			metric.WithDescription("The number of rotations done by rebalancing."),
		)),
		rebalanceSteps: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"rbtree.rebalance.steps",
			metric.WithDescription("The number of loop steps of a single rebalance."),
			metric.WithExplicitBucketBoundaries(1, 2, 4, 8, 16, 32, 64),
		)),
	}
}

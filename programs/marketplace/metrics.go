// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package marketplace

import (
	"github.com/luxfi/metric"
)

const operationLabel = "operation"

var operationLabels = []string{operationLabel}

type marketplaceMetrics struct {
	numOperations metric.CounterVec
	feesCollected metric.Counter
	volumeTraded  metric.Counter
}

func newMetrics(registerer metric.Registerer) (*marketplaceMetrics, error) {
	m := &marketplaceMetrics{
		numOperations: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "marketplace_operations",
				Help: "Number of successful marketplace operations",
			},
			operationLabels,
		),
		feesCollected: metric.NewCounter(metric.CounterOpts{
			Name: "marketplace_fees_collected",
			Help: "Cumulative platform fees collected",
		}),
		volumeTraded: metric.NewCounter(metric.CounterOpts{
			Name: "marketplace_volume_traded",
			Help: "Cumulative sale prices of completed purchases",
		}),
	}

	if err := registerer.Register(metric.AsCollector(m.feesCollected)); err != nil {
		return nil, err
	}
	if err := registerer.Register(metric.AsCollector(m.volumeTraded)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *marketplaceMetrics) markOperation(name string) {
	m.numOperations.With(metric.Labels{
		operationLabel: name,
	}).Inc()
}

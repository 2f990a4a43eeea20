// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economy

import (
	"github.com/luxfi/metric"
)

type economyMetrics struct {
	numSchedulesCreated metric.Counter
	numReleases         metric.Counter
	amountReleased      metric.Counter
	numStakes           metric.Counter
	numUnstakes         metric.Counter
}

func newMetrics(registerer metric.Registerer) (*economyMetrics, error) {
	m := &economyMetrics{
		numSchedulesCreated: metric.NewCounter(metric.CounterOpts{
			Name: "vesting_schedules_created",
			Help: "Number of vesting schedules created",
		}),
		numReleases: metric.NewCounter(metric.CounterOpts{
			Name: "vesting_releases",
			Help: "Number of successful vested-token releases",
		}),
		amountReleased: metric.NewCounter(metric.CounterOpts{
			Name: "vesting_amount_released",
			Help: "Cumulative units released from vesting vaults",
		}),
		numStakes: metric.NewCounter(metric.CounterOpts{
			Name: "stakes",
			Help: "Number of successful stake deposits",
		}),
		numUnstakes: metric.NewCounter(metric.CounterOpts{
			Name: "unstakes",
			Help: "Number of successful stake withdrawals",
		}),
	}

	for _, c := range []metric.Counter{
		m.numSchedulesCreated,
		m.numReleases,
		m.amountReleased,
		m.numStakes,
		m.numUnstakes,
	} {
		if err := registerer.Register(metric.AsCollector(c)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"

	"github.com/luxfi/ids"
)

// Config provides the execution parameters of the economy program.
type Config struct {
	// StakeAssetID is the asset accepted by the pooled staking vault.
	StakeAssetID ids.ID `json:"stake-asset-id"`
}

// GetConfig returns a Config with defaults overridden by the JSON in [b].
// Empty bytes keep the defaults.
func GetConfig(b []byte) (*Config, error) {
	c := Config{}
	if len(b) == 0 {
		return &c, nil
	}
	return &c, json.Unmarshal(b, &c)
}

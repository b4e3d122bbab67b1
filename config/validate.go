package config

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/reducer"
)

// Validate checks runtime pipeline config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.Peer.Addr == "" {
		return fmt.Errorf("peer.addr must be set")
	}
	if cfg.Storage.ConnectionParams == "" {
		return fmt.Errorf("storage.redis must be set")
	}
	if cfg.Metrics.Port < 0 || cfg.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be in range [0, 65535]")
	}
	if len(cfg.Reducers.Kinds) == 0 {
		return fmt.Errorf("reducers.enabled must name at least one reducer")
	}
	for _, k := range cfg.Reducers.Kinds {
		if _, err := (reducer.Config{Kind: reducer.Kind(k)}).Build(crosscut.MainnetWellKnownInfo()); err != nil {
			return fmt.Errorf("reducers.enabled: %w", err)
		}
	}
	if _, err := BuildIntersectConfig(cfg.Intersect); err != nil {
		return fmt.Errorf("chainsync.intersect: %w", err)
	}
	if _, err := BuildFinalizeConfig(cfg.Finalize); err != nil {
		return fmt.Errorf("finalize.untilpoint: %w", err)
	}
	return nil
}

// BuildIntersectConfig translates the file/flag-facing IntersectConfig into
// the crosscut tagged union chain-sync bootstraps from.
func BuildIntersectConfig(c IntersectConfig) (crosscut.IntersectConfig, error) {
	policy := strings.ToLower(strings.TrimSpace(c.Policy))
	switch {
	case policy == "" || policy == "origin":
		return crosscut.IntersectConfig{Kind: crosscut.IntersectOrigin}, nil
	case policy == "tip":
		return crosscut.IntersectConfig{Kind: crosscut.IntersectTip}, nil
	case strings.HasPrefix(policy, "point:"):
		p, err := crosscut.ParsePointArg(strings.TrimPrefix(policy, "point:"))
		if err != nil {
			return crosscut.IntersectConfig{}, err
		}
		return crosscut.IntersectConfig{Kind: crosscut.IntersectPoint, Point: p}, nil
	case policy == "fallbacks":
		if len(c.Fallbacks) == 0 {
			return crosscut.IntersectConfig{}, fmt.Errorf("chainsync.intersect_fallbacks must list at least one point")
		}
		return buildFallbacks(c.Fallbacks)
	default:
		return crosscut.IntersectConfig{}, fmt.Errorf("unrecognized intersect policy %q", c.Policy)
	}
}

// BuildFinalizeConfig translates the file/flag-facing FinalizeConfig into
// the crosscut policy the chain-sync stage checks after every confirmation.
func BuildFinalizeConfig(c FinalizeConfig) (*crosscut.FinalizeConfig, error) {
	if c.MaxBlocks == 0 && c.UntilPoint == "" {
		return nil, nil
	}
	out := &crosscut.FinalizeConfig{MaxBlocks: c.MaxBlocks}
	if c.UntilPoint != "" {
		p, err := crosscut.ParsePointArg(c.UntilPoint)
		if err != nil {
			return nil, err
		}
		out.UntilPoint = &p
	}
	return out, nil
}

func buildFallbacks(raw []string) (crosscut.IntersectConfig, error) {
	out := crosscut.IntersectConfig{Kind: crosscut.IntersectFallbacks}
	for _, r := range raw {
		p, err := crosscut.ParsePointArg(r)
		if err != nil {
			return crosscut.IntersectConfig{}, err
		}
		out.Fallbacks = append(out.Fallbacks, p)
	}
	return out, nil
}

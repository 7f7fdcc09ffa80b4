// Package config resolves an rulekit.ExperimentConfig from four layers, in
// ascending precedence: built-in defaults, a YAML file, environment
// variables, and CLI flags. Each layer only overrides fields it actually
// sets; an empty/zero layer leaves the previous layer's value untouched.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

// Overrides carries CLI-flag values. A nil pointer means "flag not set";
// only non-nil fields override lower-precedence layers.
type Overrides struct {
	Seed                   *int64
	Strategy               *string
	InferenceMethod        *string
	ClusteringEnabled      *bool
	ClusterMethod          *string
	Linkage                *string
	NClusters              *int
	CentroidMethod         *string
	CentroidThreshold      *float64
	CentroidMatchThreshold *float64
	GoalAttribute          *string
	GoalValue              *string
}

// Resolve builds an ExperimentConfig from rulekit.DefaultExperimentConfig(),
// a YAML file at path (skipped if path is empty or the file doesn't exist),
// the RULEFORGE_* environment variables, and cli, then validates the
// result.
func Resolve(path string, cli Overrides) (rulekit.ExperimentConfig, error) {
	cfg := rulekit.DefaultExperimentConfig()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return rulekit.ExperimentConfig{}, err
		}
	}

	applyEnv(&cfg)
	applyCLI(&cfg, cli)

	if err := cfg.Validate(); err != nil {
		return rulekit.ExperimentConfig{}, err
	}
	return cfg, nil
}

func applyFile(cfg *rulekit.ExperimentConfig, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *rulekit.ExperimentConfig) {
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_STRATEGY")); v != "" {
		cfg.Strategy = rulekit.StrategyName(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_INFERENCE_METHOD")); v != "" {
		cfg.InferenceMethod = rulekit.InferenceMethod(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_CLUSTERING_ENABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ClusteringEnabled = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_CLUSTER_METHOD")); v != "" {
		cfg.ClusterMethod = rulekit.ClusterMethod(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_LINKAGE")); v != "" {
		cfg.Linkage = rulekit.Linkage(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_N_CLUSTERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NClusters = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_CENTROID_METHOD")); v != "" {
		cfg.CentroidMethod = rulekit.CentroidMethod(v)
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_CENTROID_THRESHOLD")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.CentroidThreshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_CENTROID_MATCH_THRESHOLD")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.CentroidMatchThreshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_GOAL_ATTRIBUTE")); v != "" {
		cfg.GoalAttribute = v
	}
	if v := strings.TrimSpace(os.Getenv("RULEFORGE_GOAL_VALUE")); v != "" {
		cfg.GoalValue = v
	}
}

func applyCLI(cfg *rulekit.ExperimentConfig, o Overrides) {
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Strategy != nil {
		cfg.Strategy = rulekit.StrategyName(*o.Strategy)
	}
	if o.InferenceMethod != nil {
		cfg.InferenceMethod = rulekit.InferenceMethod(*o.InferenceMethod)
	}
	if o.ClusteringEnabled != nil {
		cfg.ClusteringEnabled = *o.ClusteringEnabled
	}
	if o.ClusterMethod != nil {
		cfg.ClusterMethod = rulekit.ClusterMethod(*o.ClusterMethod)
	}
	if o.Linkage != nil {
		cfg.Linkage = rulekit.Linkage(*o.Linkage)
	}
	if o.NClusters != nil {
		cfg.NClusters = *o.NClusters
	}
	if o.CentroidMethod != nil {
		cfg.CentroidMethod = rulekit.CentroidMethod(*o.CentroidMethod)
	}
	if o.CentroidThreshold != nil {
		cfg.CentroidThreshold = *o.CentroidThreshold
	}
	if o.CentroidMatchThreshold != nil {
		cfg.CentroidMatchThreshold = *o.CentroidMatchThreshold
	}
	if o.GoalAttribute != nil {
		cfg.GoalAttribute = *o.GoalAttribute
	}
	if o.GoalValue != nil {
		cfg.GoalValue = *o.GoalValue
	}
}

package main

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
)

// Config holds everything the service needs: where to listen, where the
// model checkpoints live, where generated videos go, and how the external
// inference program is invoked. All fields come from environment variables
// with defaults matching the stock GPU image layout.
type Config struct {
	Addr            string `env:"ADDR,default=:8000"`
	CheckpointDir   string `env:"CHECKPOINT_DIR,default=/workspace/checkpoints/ditto_trt_Ampere_Plus"`
	CfgPkl          string `env:"CFG_PKL,default=/workspace/checkpoints/ditto_cfg/v0.4_hubert_cfg_trt.pkl"`
	OutputDir       string `env:"OUTPUT_DIR,default=/workspace/outputs"`
	InferenceCmd    string `env:"INFERENCE_CMD,default=python3"`
	InferenceScript string `env:"INFERENCE_SCRIPT,default=inference.py"`

	// TimeoutSeconds bounds a single inference run. Zero means no limit:
	// a hung process then blocks its request until the platform kills
	// the pod.
	TimeoutSeconds int `env:"INFERENCE_TIMEOUT_SECONDS,default=0"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES,default=536870912"`

	Extras env.EnvSet
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	extras, err := env.UnmarshalFromEnviron(cfg)
	if err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}
	cfg.Extras = extras

	return cfg, nil
}

// InferenceTimeout returns the configured per-run deadline, or zero when
// runs are unbounded.
func (c *Config) InferenceTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

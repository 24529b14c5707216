package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "/workspace/checkpoints/ditto_trt_Ampere_Plus", cfg.CheckpointDir)
	assert.Equal(t, "/workspace/checkpoints/ditto_cfg/v0.4_hubert_cfg_trt.pkl", cfg.CfgPkl)
	assert.Equal(t, "/workspace/outputs", cfg.OutputDir)
	assert.Equal(t, "python3", cfg.InferenceCmd)
	assert.Equal(t, "inference.py", cfg.InferenceScript)
	assert.Equal(t, time.Duration(0), cfg.InferenceTimeout())
	assert.Equal(t, int64(512<<20), cfg.MaxUploadBytes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("OUTPUT_DIR", "/tmp/videos")
	t.Setenv("INFERENCE_TIMEOUT_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/videos", cfg.OutputDir)
	assert.Equal(t, 2*time.Minute, cfg.InferenceTimeout())
}

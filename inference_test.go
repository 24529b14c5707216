package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInference writes a shell script that stands in for the external
// inference program so Invoker behavior can be exercised without a model.
func fakeInference(t *testing.T, script string) (cmd, scriptPath string) {
	t.Helper()

	scriptPath = filepath.Join(t.TempDir(), "inference.sh")
	require.NoError(t, os.WriteFile(scriptPath, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return "/bin/sh", scriptPath
}

func invokerConfig(t *testing.T, script string) *Config {
	t.Helper()

	cmd, scriptPath := fakeInference(t, script)
	return &Config{
		CheckpointDir:   "/workspace/checkpoints/ditto_trt_Ampere_Plus",
		CfgPkl:          "/workspace/checkpoints/ditto_cfg/v0.4_hubert_cfg_trt.pkl",
		OutputDir:       t.TempDir(),
		InferenceCmd:    cmd,
		InferenceScript: scriptPath,
	}
}

const writeOutputScript = `while [ $# -gt 0 ]; do
  if [ "$1" = "--output_path" ]; then out="$2"; fi
  shift
done
echo video > "$out"`

func TestInvokerRunSuccess(t *testing.T) {
	t.Parallel()

	cfg := invokerConfig(t, writeOutputScript)
	invoker := NewInvoker(cfg, zerolog.Nop())

	outputPath, err := invoker.Run(context.Background(), "face.png", "clip.wav")
	require.NoError(t, err)

	assert.Equal(t, cfg.OutputDir, filepath.Dir(outputPath))
	assert.True(t, strings.HasSuffix(outputPath, ".mp4"))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "video\n", string(content))
}

func TestInvokerRunDistinctOutputNames(t *testing.T) {
	t.Parallel()

	cfg := invokerConfig(t, writeOutputScript)
	invoker := NewInvoker(cfg, zerolog.Nop())

	first, err := invoker.Run(context.Background(), "face.png", "clip.wav")
	require.NoError(t, err)
	second, err := invoker.Run(context.Background(), "face.png", "clip.wav")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestInvokerRunNonZeroExit(t *testing.T) {
	t.Parallel()

	cfg := invokerConfig(t, `echo "CUDA out of memory" >&2; exit 3`)
	invoker := NewInvoker(cfg, zerolog.Nop())

	_, err := invoker.Run(context.Background(), "face.png", "clip.wav")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInferenceFailed)
	assert.Contains(t, err.Error(), "CUDA out of memory")
}

func TestInvokerRunContextDeadline(t *testing.T) {
	t.Parallel()

	cfg := invokerConfig(t, `sleep 10`)
	invoker := NewInvoker(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := invoker.Run(ctx, "face.png", "clip.wav")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInferenceFailed)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/rs/zerolog"
)

// ErrInferenceFailed is returned when the external inference process exits
// non-zero or cannot be started. The wrapped message carries the process's
// reported error detail.
var ErrInferenceFailed = errors.New("inference failed")

// VideoGenerator produces a talking-head video from a source image and an
// audio clip, returning the path of the written file. Implementations must
// write exactly one file and nothing else.
type VideoGenerator interface {
	Run(ctx context.Context, sourcePath, audioPath string) (string, error)
}

// Invoker runs the external inference program synchronously. It is the only
// component that talks to the model: one invocation, one video written into
// the output directory.
type Invoker struct {
	cfg *Config
	log zerolog.Logger
}

func NewInvoker(cfg *Config, log zerolog.Logger) *Invoker {
	return &Invoker{cfg: cfg, log: log}
}

// Run blocks until the inference process exits. There is no progress
// reporting and no partial output; the caller is responsible for confirming
// the file exists before streaming it.
func (iv *Invoker) Run(ctx context.Context, sourcePath, audioPath string) (string, error) {
	outputPath := filepath.Join(iv.cfg.OutputDir, newID()+".mp4")

	task := execute.ExecTask{
		Command: iv.cfg.InferenceCmd,
		Args: []string{
			iv.cfg.InferenceScript,
			"--data_root", iv.cfg.CheckpointDir,
			"--cfg_pkl", iv.cfg.CfgPkl,
			"--audio_path", audioPath,
			"--source_path", sourcePath,
			"--output_path", outputPath,
		},
		StreamStdio: false,
	}

	iv.log.Info().
		Str("cmd", task.Command).
		Strs("args", task.Args).
		Msg("running inference")

	started := time.Now()

	res, err := task.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return "", fmt.Errorf("%w: %s", ErrInferenceFailed, detail)
	}

	iv.log.Info().
		Str("output", outputPath).
		Dur("took", time.Since(started)).
		Msg("inference complete")

	return outputPath, nil
}

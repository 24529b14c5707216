// talking-head-api: thin HTTP façade over an external talking-head video
// generation program. Upload a source image and an audio clip, the service
// shells out to the inference command and streams back the produced .mp4.
//
// Run: go run .  (then open http://localhost:8000)
// Batch mode: go run . -batch -event job.json
package main

import (
	"context"
	"flag"
	"os"
	"os/exec"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	batchMode := flag.Bool("batch", false, "run one platform-dispatched job instead of the HTTP server")
	eventPath := flag.String("event", "", "JSON event file for -batch (default: stdin)")
	flag.Parse()

	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.OutputDir).Msg("cannot create output dir")
	}

	// The inference command usually only exists inside the GPU image, so a
	// missing binary is a warning here rather than a startup failure.
	if _, err := exec.LookPath(cfg.InferenceCmd); err != nil {
		log.Warn().Str("cmd", cfg.InferenceCmd).Msg("inference command not found in PATH")
	}

	invoker := NewInvoker(cfg, log)

	if *batchMode {
		ctx := context.Background()
		if timeout := cfg.InferenceTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := runBatch(ctx, invoker, *eventPath, log); err != nil {
			log.Fatal().Err(err).Msg("batch run failed")
		}
		return
	}

	store := NewStore(cfg.OutputDir, log)
	srv := newServer(cfg, store, invoker, log)

	r := gin.Default()
	srv.routes(r)

	log.Info().
		Str("addr", cfg.Addr).
		Str("output_dir", cfg.OutputDir).
		Msg("talking-head API listening")

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

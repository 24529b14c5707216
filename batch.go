package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Event is the job payload delivered by the batch dispatch platform. The
// paths must already exist on the worker's filesystem; there is no upload
// step and no extension validation on this path.
type Event struct {
	Input EventInput `json:"input"`
}

type EventInput struct {
	SourcePath string `json:"source_path"`
	AudioPath  string `json:"audio_path"`
}

// BatchHandler runs one platform-dispatched job. It never returns an error:
// every failure becomes an {"error": ...} result so the calling platform can
// inspect it without exception handling.
func BatchHandler(ctx context.Context, gen VideoGenerator, event Event) map[string]string {
	if event.Input.SourcePath == "" || event.Input.AudioPath == "" {
		return map[string]string{"error": "Missing source_path or audio_path in input"}
	}

	outputPath, err := gen.Run(ctx, event.Input.SourcePath, event.Input.AudioPath)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}

	return map[string]string{"output_path": outputPath}
}

// runBatch reads a single JSON event from the given file (or stdin when the
// path is empty), runs the handler, and prints the result map to stdout.
func runBatch(ctx context.Context, gen VideoGenerator, eventPath string, log zerolog.Logger) error {
	var src io.Reader = os.Stdin
	if eventPath != "" {
		f, err := os.Open(eventPath)
		if err != nil {
			return fmt.Errorf("open event file: %w", err)
		}
		defer f.Close()
		src = f
	}

	var event Event
	result := map[string]string{}
	if err := json.NewDecoder(src).Decode(&event); err != nil {
		result["error"] = fmt.Sprintf("invalid event: %v", err)
	} else {
		result = BatchHandler(ctx, gen, event)
	}

	if msg, failed := result["error"]; failed {
		log.Error().Str("error", msg).Msg("batch job failed")
	} else {
		log.Info().Str("output", result["output_path"]).Msg("batch job complete")
	}

	return json.NewEncoder(os.Stdout).Encode(result)
}

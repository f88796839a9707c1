package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/formatter"
	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
	"golang.org/x/time/rate"
)

// TrackRef identifies one track to export.
type TrackRef struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// TrackExportResult is the outcome of exporting a single track.
type TrackExportResult struct {
	Track   TrackRef `json:"track"`
	Success bool     `json:"success"`
	File    string   `json:"file,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalTracks       int                 `json:"total_tracks"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"manifest_path,omitempty"`
	Results           []TrackExportResult `json:"results"`
}

// BulkExportOpts contains configuration for bulk lyrics exports.
type BulkExportOpts struct {
	Format     string  // Export format: txt, lrc, markdown, json
	OutputDir  string  // Base output directory (default: lyrics_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Requests per second (default: 2)
	TargetLang string  // Translate before export when set
}

// ExportEngine runs lyrics export operations against the lyrics service.
type ExportEngine struct {
	api    services.LyricsAPI
	logger *log.Logger
}

// NewExportEngine creates an engine backed by api.
func NewExportEngine(api services.LyricsAPI, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{api: api, logger: logger}
}

// BulkExport fetches and writes lyrics for every track concurrently, with
// rate limiting and progress reporting. Individual failures are recorded in
// the result rather than aborting the run; a manifest summarizing the run is
// written alongside the exports.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, tracks []TrackRef, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: lyrics service not initialized", shared.ErrServiceUnavailable)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks to export", shared.ErrMissingArgument)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("lyrics_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalTracks:     len(tracks),
		OutputDirectory: opts.OutputDir,
		Results:         make([]TrackExportResult, 0, len(tracks)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan TrackRef, len(tracks))
	results := make(chan TrackExportResult, len(tracks))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- TrackExportResult{Track: ref, Error: err.Error()}
					continue
				}
				results <- e.exportTrack(ctx, ref, opts)
			}
		}()
	}

	for i, ref := range tracks {
		e.sendProgress(prog, fetchLyricsUpdate(i+1, len(tracks), ref))
		jobs <- ref
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(tracks), res.Track, res.File))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(tracks), res.Track, fmt.Errorf("%s", res.Error)))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	f, err := os.Create(manifestPath)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	defer f.Close()
	if err := formatter.WriteManifest(result, f); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// ExportCurrent exports the lyrics for whatever is playing right now.
func (e *ExportEngine) ExportCurrent(ctx context.Context, prog chan<- ProgressUpdate, userID string, opts BulkExportOpts) (*TrackExportResult, error) {
	e.sendProgress(prog, fetchPlaybackUpdate())
	state, err := e.api.CurrentlyPlaying(ctx, userID)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	ref := TrackRef{TrackName: state.TrackName, ArtistName: state.ArtistName}
	e.sendProgress(prog, fetchLyricsUpdate(1, 1, ref))

	res := e.exportTrack(ctx, ref, opts)
	if !res.Success {
		return &res, fmt.Errorf("%s", res.Error)
	}
	e.sendProgress(prog, exportCompletedUpdate(1, 1, ref, res.File))
	return &res, nil
}

// exportTrack fetches, optionally translates, renders, and writes one track.
func (e *ExportEngine) exportTrack(ctx context.Context, ref TrackRef, opts BulkExportOpts) TrackExportResult {
	result := TrackExportResult{Track: ref}

	resp, err := e.api.Lyrics(ctx, ref.TrackName, ref.ArtistName)
	if err != nil {
		result.Error = fmt.Sprintf("failed to fetch lyrics: %v", err)
		return result
	}

	doc := lyrics.NewDocument(resp.Lyrics, resp.Lines, resp.Synced)
	if doc.Empty() {
		result.Error = shared.ErrNoLyrics.Error()
		return result
	}

	if opts.TargetLang != "" {
		translated, err := e.api.Translate(ctx, services.TranslationRequest{
			Lyrics:     doc.Text(),
			TargetLang: opts.TargetLang,
			Lines:      doc.Lines,
		})
		if err != nil {
			result.Error = fmt.Sprintf("failed to translate lyrics: %v", err)
			return result
		}
		doc = lyrics.NewDocument(translated.TranslatedLyrics, translated.TranslatedLines, len(translated.TranslatedLines) > 0 && doc.Synced)
	}

	meta := formatter.TrackMeta{TrackName: ref.TrackName, ArtistName: ref.ArtistName}
	data, err := formatter.ExportDocument(meta, doc, opts.Format)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	filename := fmt.Sprintf("%s.%s", safeFilename(ref.ArtistName+" - "+ref.TrackName), formatter.ExportExtension(opts.Format))
	path := filepath.Join(opts.OutputDir, filename)
	if err := formatter.WriteExport(data, path); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.File = path
	return result
}

// sendProgress delivers an update without blocking when nobody is listening.
func (e *ExportEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
		e.logger.Debug("progress update dropped", "phase", update.Phase.String(), "step", update.Step)
	}
}

// safeFilename keeps exports portable across filesystems.
func safeFilename(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "-")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

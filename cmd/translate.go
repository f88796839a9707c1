package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// targetLang returns the translation target a command uses, preferring the
// --to flag over the configured default.
func (r *Runner) targetLang(cmd *cli.Command) (string, error) {
	lang := cmd.String("to")
	if lang == "" {
		lang = r.config.Translation.TargetLang
	}
	if lang == "" {
		return "", fmt.Errorf("%w: pass --to or set translation.target_lang in config.toml", shared.ErrMissingArgument)
	}
	return lang, nil
}

// Translate fetches lyrics for a track and translates the whole document.
func (r *Runner) Translate(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	overlayMode := cmd.Bool("overlay")

	lang, err := r.targetLang(cmd)
	if err != nil {
		return err
	}

	track, artist, err := r.resolveTrack(ctx, cmd)
	if err != nil {
		return err
	}

	lyricsResp, err := r.api.Lyrics(ctx, track, artist)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	req := services.TranslationRequest{
		Lyrics:     lyricsResp.Lyrics,
		TargetLang: lang,
		SourceLang: r.config.Translation.SourceLang,
	}
	if lyricsResp.Synced {
		req.Lines = lyricsResp.Lines
	}

	if overlayMode {
		return r.translateOverlay(ctx, req, track, artist, useJSON, pretty)
	}

	r.logger.Infof("translating lyrics for %s - %s to %s", artist, track, lang)

	resp, err := r.api.Translate(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}

	if useJSON {
		return r.writeJSON(resp, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s (%s)", artist, track, lang))
	r.writePlain("%s\n", resp.TranslatedLyrics)
	if resp.DetectedLanguage != "" {
		r.writePlain("\nDetected language: %s\n", resp.DetectedLanguage)
	}

	return nil
}

// translateOverlay prints the line-paired translation, originals interleaved.
func (r *Runner) translateOverlay(ctx context.Context, req services.TranslationRequest, track, artist string, useJSON, pretty bool) error {
	r.logger.Infof("translating lyrics line-by-line for %s - %s to %s", artist, track, req.TargetLang)

	resp, err := r.api.TranslateLines(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}

	if useJSON {
		return r.writeJSON(resp, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s (%s)", artist, track, req.TargetLang))
	for _, line := range resp.Lines {
		r.writePlain("%s\n", line.Original)
		if line.Translated != "" {
			r.writePlain("  %s\n", line.Translated)
		}
	}

	return nil
}

// TranslateWord translates a single word.
func (r *Runner) TranslateWord(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	word := cmd.StringArg("word")
	if word == "" {
		return fmt.Errorf("%w: a word to translate is required", shared.ErrMissingArgument)
	}

	lang, err := r.targetLang(cmd)
	if err != nil {
		return err
	}

	sourceLang := cmd.String("from")
	if sourceLang == "" {
		sourceLang = r.config.Translation.SourceLang
	}

	r.logger.Infof("translating word %q to %s", word, lang)

	resp, err := r.api.TranslateWord(ctx, word, lang, sourceLang)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}

	if useJSON {
		return r.writeJSON(resp, pretty)
	}

	r.writePlain("%s → %s\n", resp.OriginalWord, resp.TranslatedWord)
	if resp.DetectedLanguage != "" {
		r.writePlain("Detected language: %s\n", resp.DetectedLanguage)
	}

	return nil
}

// Languages lists supported translation targets.
func (r *Runner) Languages(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	languages, err := r.api.Languages(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(languages, pretty)
	}

	r.writePlain("Supported languages (%d):\n\n", len(languages))
	for _, lang := range languages {
		r.writePlain("  %-8s %s\n", lang.Code, lang.Name)
	}

	return nil
}

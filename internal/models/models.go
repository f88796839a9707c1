// package models defines the data model for the lyrics display session
package models

// PlaybackState is an immutable snapshot of the user's playback, produced once
// per poll tick and superseded wholesale by the next tick.
type PlaybackState struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name,omitempty"`
	AlbumArt   string `json:"album_art,omitempty"`
	IsPlaying  bool   `json:"is_playing"`
	ProgressMs int    `json:"progress_ms"`
	DurationMs int    `json:"duration_ms"`
}

// LyricsLine is a single line of lyrics. TimestampMs is nil unless the source
// document is time-coded.
type LyricsLine struct {
	Text        string `json:"text"`
	TimestampMs *int   `json:"timestamp_ms,omitempty"`
}

// LyricsDocument is an ordered line sequence normalized from a raw lyrics payload.
//
// If Synced is true every line should carry a timestamp and the sequence should
// be non-decreasing, but consumers tolerate violations defensively.
type LyricsDocument struct {
	Synced bool         `json:"synced"`
	Lines  []LyricsLine `json:"lines"`
}

// OverlayLine pairs an original lyric line with its translation. Structurally
// parallel to [LyricsLine] but carries both languages.
type OverlayLine struct {
	Original    string `json:"original"`
	Translated  string `json:"translated"`
	TimestampMs *int   `json:"timestamp_ms,omitempty"`
}

// WordTranslationEntry is the memoized result of a single-word translation.
// One entry exists per clicked word instance, never deduplicated globally.
type WordTranslationEntry struct {
	Word         string `json:"word"`
	Translation  string `json:"translation"`
	TargetLang   string `json:"target_lang"`
	DetectedLang string `json:"detected_lang,omitempty"`
}

// Language is a supported translation target.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Artist is a browse result from the top-artists endpoint.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      string   `json:"image,omitempty"`
	Popularity int      `json:"popularity"`
	TopTracks  []string `json:"top_tracks,omitempty"`
}

// Ms is a convenience constructor for optional millisecond timestamps.
func Ms(v int) *int { return &v }

// Text joins the document's lines into a single newline-separated block,
// the shape translation requests expect.
func (d *LyricsDocument) Text() string {
	if d == nil || len(d.Lines) == 0 {
		return ""
	}
	out := d.Lines[0].Text
	for _, line := range d.Lines[1:] {
		out += "\n" + line.Text
	}
	return out
}

// Empty reports whether the document holds no lines.
func (d *LyricsDocument) Empty() bool {
	return d == nil || len(d.Lines) == 0
}

// Package services defines the [LyricsAPI] interface for the external
// collaborators the display session depends on and implements it for the
// lyrics/translation backend.
//
// # Backend Implementation
//
// [BackendService] wraps [APIService], a raw JSON client. Every failed
// request surfaces an error string taken from the response "detail" field
// when present, falling back to a generic status message; none of these
// failures are fatal to a display session.
//
// Error mapping worth knowing:
//   - [shared.ErrNotPlaying] : playback poll found no active track
//   - [shared.ErrNoLyrics] : 404 from the lyrics endpoint, rendered as an
//     informational empty state rather than an error banner
//   - [shared.ErrTranslationFailed] : any translation request failure
//   - [shared.ErrAPIRequest] : transport or non-success status
//
// # Spotify Implementation
//
// [SpotifyService] is a direct Spotify Web API client using [oauth2] with
// automatic token refresh. The auth command uses it for the authorization
// code flow; it can also serve as an alternative playback source when the
// backend poll endpoint is unreachable.
package services

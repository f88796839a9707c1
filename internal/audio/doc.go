// package audio plays word pronunciations.
//
// Clips come back from the text-to-speech collaborator as raw bytes, get
// written to temp files, and are cached per (text, language) pair so a
// repeated click never re-synthesizes. Playback shells out to whichever
// command-line player is installed (mpg123, ffplay, mpv, vlc, afplay on
// macOS). Exactly one clip can hold the playing slot; starting a new clip
// stops the old one first. Teardown stops playback and deletes every
// cached file.
package audio

package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/shared"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Player shells out to whichever command-line audio player is installed.
type Player struct {
	binary string // preferred binary from config, may be empty
	logger *log.Logger
}

// NewPlayer creates a player preferring the configured binary, falling back
// through common players found on PATH.
func NewPlayer(binary string, logger *log.Logger) *Player {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Player{binary: binary, logger: logger}
}

// playerArgs returns the flags that make each player exit when the clip
// ends without opening a window. binary may be the absolute path lookPath
// resolved to.
func playerArgs(binary, path string) []string {
	switch filepath.Base(binary) {
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	case "mpv":
		return []string{"--no-video", "--really-quiet", path}
	case "vlc", "cvlc":
		return []string{"--intf", "dummy", "--play-and-exit", path}
	default: // mpg123, afplay
		return []string{path}
	}
}

func (p *Player) candidates() []string {
	names := []string{"mpg123", "ffplay", "mpv", "cvlc", "vlc"}
	if runtime.GOOS == "darwin" {
		names = append([]string{"afplay"}, names...)
	}
	if p.binary != "" {
		names = append([]string{p.binary}, names...)
	}
	return names
}

// resolve finds the first available player binary on PATH.
func (p *Player) resolve() (string, error) {
	for _, name := range p.candidates() {
		if resolved, err := lookPath(name); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%w: no audio player found (tried %v)", shared.ErrPlaybackFailed, p.candidates())
}

// Playback is one running clip. Done is closed when the player process
// exits, whether it finished or was stopped.
type Playback struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu  sync.Mutex
	err error
}

// Play starts the clip at path and returns immediately. The caller owns the
// returned playback and must Stop it or wait for Done.
func (p *Player) Play(ctx context.Context, path string) (*Playback, error) {
	binary, err := p.resolve()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, binary, playerArgs(binary, path)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}
	p.logger.Debug("playback started", "binary", binary, "path", path)

	pb := &Playback{cmd: cmd, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		pb.mu.Lock()
		pb.err = err
		pb.mu.Unlock()
		close(pb.done)
	}()
	return pb, nil
}

// Stop kills the player process. Safe to call after the clip has finished.
func (pb *Playback) Stop() {
	if pb.cmd != nil && pb.cmd.Process != nil {
		_ = pb.cmd.Process.Kill()
	}
}

// Done is closed when the player process exits.
func (pb *Playback) Done() <-chan struct{} { return pb.done }

// Err returns the process exit error, if any. Only meaningful after Done.
func (pb *Playback) Err() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.err
}

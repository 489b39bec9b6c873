package notify

import (
	"log/slog"
	"os"
	"os/exec"
)

// Notifier plays a short sound when an episode finishes downloading. It is
// strictly best-effort: a missing player binary, a missing sound file or a
// playback failure are all ignored.
type Notifier struct {
	player string
	sound  string
}

func New(player, sound string) *Notifier {
	return &Notifier{player: player, sound: sound}
}

// PlayCompletionSound runs the player quietly if both the binary and the
// sound file exist.
func (n *Notifier) PlayCompletionSound() {
	if _, err := os.Stat(n.sound); err != nil {
		return
	}
	if _, err := os.Stat(n.player); err != nil {
		return
	}
	if err := exec.Command(n.player, "-q", n.sound).Run(); err != nil {
		slog.Debug("Completion sound failed", "error", err)
	}
}

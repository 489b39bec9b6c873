package domain

import (
	"fmt"
	"path/filepath"
)

// DownloadTarget identifies one episode file on disk. The deterministic file
// name doubles as the completion marker for fill-up mode.
type DownloadTarget struct {
	ProgramName  string
	Day          CalendarDay
	OutputFolder string
}

// FileName returns "<year>.<month><day>.<programName>.mp3".
func (t DownloadTarget) FileName() string {
	return fmt.Sprintf("%s.%s.mp3", t.Day.FileDate(), t.ProgramName)
}

// Path returns the full path of the episode file inside the output folder.
func (t DownloadTarget) Path() string {
	return filepath.Join(t.OutputFolder, t.FileName())
}

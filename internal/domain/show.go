package domain

import "encoding/json"

// ShowEntry is one scheduled broadcast instance of a program, as stored in
// the station's preloaded page state.
type ShowEntry struct {
	Date         int64      `json:"date"`
	Title        string     `json:"title"`
	Introduction string     `json:"introduction"`
	Program      ProgramRef `json:"program"`
	Editor       string     `json:"editor"`
	Guests       []Guest    `json:"guests"`

	// Audio is nil while the recording has not been published yet.
	Audio *Audio `json:"audio"`

	// Raw keeps the entry as decoded from the page, for debug dumps.
	Raw json.RawMessage `json:"-"`
}

// ProgramRef is the program reference embedded in each show entry.
type ProgramRef struct {
	Name string `json:"name"`
}

// Guest is a show guest; either field may be absent.
type Guest struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

// Audio describes a published recording.
type Audio struct {
	Channel *AudioChannel `json:"channel"`
}

// AudioChannel carries the identifier used to build the audio download URL.
type AudioChannel struct {
	ID string `json:"_id"`
}

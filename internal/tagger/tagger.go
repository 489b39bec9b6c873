package tagger

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/arnix/ner-radio/internal/domain"
)

// Tagger writes episode metadata as ID3 tags onto downloaded MP3 files.
type Tagger struct{}

func New() *Tagger {
	return &Tagger{}
}

// WriteTags stamps the file with the show's metadata: title, introduction as
// comment, program name as album, editor as album artist, guests as artist
// and the source audio URL as a custom frame.
func (t *Tagger) WriteTags(path string, entry *domain.ShowEntry, day domain.CalendarDay, audioURL string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(day.FileDate() + " " + entry.Title)
	tag.SetAlbum(entry.Program.Name)
	tag.SetArtist(GuestLine(entry.Guests))
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, entry.Editor)
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding: id3v2.EncodingUTF8,
		Language: "zho",
		Text:     entry.Introduction,
	})
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: "Audio URL",
		Value:       audioURL,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags for %s: %w", path, err)
	}
	return nil
}

// GuestLine concatenates guest names and units into the artist field,
// skipping absent values.
func GuestLine(guests []domain.Guest) string {
	var b strings.Builder
	for _, guest := range guests {
		if guest.Name != nil {
			b.WriteString(*guest.Name)
		}
		if guest.Unit != nil {
			b.WriteString(*guest.Unit)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

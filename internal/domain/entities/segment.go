package entities

import (
	"fmt"
	"time"
)

// TranscriptSegment is a single timestamped span of transcribed speech
type TranscriptSegment struct {
	Start float64 `json:"start"`         // seconds from the beginning of the audio
	End   float64 `json:"end,omitempty"` // seconds, zero when the engine does not report it
	Text  string  `json:"text"`
}

// StartOffset returns the segment start as an elapsed duration
func (s TranscriptSegment) StartOffset() time.Duration {
	return time.Duration(s.Start * float64(time.Second))
}

// GroupedChunk is a merged run of segments used as the unit of retrieval
type GroupedChunk struct {
	Text   string        `json:"text"`
	Anchor time.Duration `json:"anchor"` // start of the first folded segment
}

// Tag renders the anchor as HH:MM:SS, the metadata tag stored next to the indexed chunk
func (c GroupedChunk) Tag() string {
	return FormatClock(c.Anchor)
}

// FormatClock formats a duration as HH:MM:SS, truncating sub-second parts
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Passage is an indexed chunk returned by a similarity search
type Passage struct {
	Text   string  `json:"text"`
	Source string  `json:"source"` // HH:MM:SS tag of the chunk
	Score  float32 `json:"score"`
}

package segment

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

type rawSegment struct {
	Start json.RawMessage `json:"start"`
	End   json.RawMessage `json:"end"`
	Text  *string         `json:"text"`
}

type rawTranscript struct {
	Segments []rawSegment `json:"segments"`
}

// Decode parses whisper-style JSON output, either {"segments":[...]} or a bare
// array of segments. A segment without text, or whose start is missing or not
// a number, yields an *entities.InvalidSegmentError.
func Decode(data []byte) ([]entities.TranscriptSegment, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode segments: empty input")
	}

	var raw []rawSegment
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode segments: %w", err)
		}
	} else {
		var rt rawTranscript
		if err := json.Unmarshal(data, &rt); err != nil {
			return nil, fmt.Errorf("decode segments: %w", err)
		}
		raw = rt.Segments
	}

	out := make([]entities.TranscriptSegment, 0, len(raw))
	for i, r := range raw {
		if r.Text == nil {
			return nil, &entities.InvalidSegmentError{Index: i, Reason: "missing text"}
		}
		if len(r.Start) == 0 || string(r.Start) == "null" {
			return nil, &entities.InvalidSegmentError{Index: i, Reason: "missing start"}
		}
		var start float64
		if err := json.Unmarshal(r.Start, &start); err != nil {
			return nil, &entities.InvalidSegmentError{Index: i, Reason: "start is not a number"}
		}
		var end float64
		if len(r.End) > 0 && string(r.End) != "null" {
			if err := json.Unmarshal(r.End, &end); err != nil {
				return nil, &entities.InvalidSegmentError{Index: i, Reason: "end is not a number"}
			}
		}
		out = append(out, entities.TranscriptSegment{Start: start, End: end, Text: *r.Text})
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

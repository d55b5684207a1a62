package segment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// DefaultWindow is the grouping window used when none is configured
const DefaultWindow = 30 * time.Second

// MaxStartSeconds is the largest start offset that still fits in a time.Duration
const MaxStartSeconds = float64(math.MaxInt64 / int64(time.Second))

// Mode selects how a segment is compared against the group it may join
type Mode string

const (
	// ModeGap compares a segment with the start of the segment before it
	ModeGap Mode = "gap"
	// ModeWindow compares a segment with the anchor of the current group
	ModeWindow Mode = "window"
	// ModeLegacy compares local time-of-day values against the group anchor.
	// Offsets that cross local midnight wrap around, so everything after the
	// wrap folds into the open group.
	ModeLegacy Mode = "legacy"
)

// ParseMode converts a configuration value into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeGap:
		return ModeGap, nil
	case ModeWindow:
		return ModeWindow, nil
	case ModeLegacy:
		return ModeLegacy, nil
	}
	return "", fmt.Errorf("unknown grouping mode %q", s)
}

// Options controls Group
type Options struct {
	Window   time.Duration
	Mode     Mode
	Location *time.Location // only used by ModeLegacy, defaults to time.Local
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Mode == "" {
		o.Mode = ModeGap
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// position maps a segment start onto the axis used for comparisons
func (o Options) position(s entities.TranscriptSegment) time.Duration {
	if o.Mode != ModeLegacy {
		return s.StartOffset()
	}
	sec := math.Floor(s.Start)
	frac := s.Start - sec
	t := time.Unix(int64(sec), int64(frac*float64(time.Second))).In(o.Location)
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// Group folds ordered segments into chunks bounded by the configured window.
// Segments are taken in the order given. Every segment lands in exactly one
// chunk, including segments with empty text, and the last group is always emitted.
func Group(segments []entities.TranscriptSegment, opts Options) ([]entities.GroupedChunk, error) {
	if err := Validate(segments); err != nil {
		return nil, err
	}
	chunks := make([]entities.GroupedChunk, 0)
	if len(segments) == 0 {
		return chunks, nil
	}
	opts = opts.withDefaults()

	var b strings.Builder
	anchor := opts.position(segments[0])
	prev := anchor
	b.WriteString(segments[0].Text)

	for _, seg := range segments[1:] {
		pos := opts.position(seg)
		ref := anchor
		if opts.Mode == ModeGap {
			ref = prev
		}
		if pos-ref <= opts.Window {
			b.WriteString(seg.Text)
		} else {
			chunks = append(chunks, entities.GroupedChunk{Text: b.String(), Anchor: anchor})
			b.Reset()
			b.WriteString(seg.Text)
			anchor = pos
		}
		prev = pos
	}
	chunks = append(chunks, entities.GroupedChunk{Text: b.String(), Anchor: anchor})
	return chunks, nil
}

// Validate checks that every segment carries a usable start offset
func Validate(segments []entities.TranscriptSegment) error {
	for i, s := range segments {
		switch {
		case math.IsNaN(s.Start):
			return &entities.InvalidSegmentError{Index: i, Reason: "start is NaN"}
		case math.IsInf(s.Start, 0):
			return &entities.InvalidSegmentError{Index: i, Reason: "start is infinite"}
		case s.Start < 0:
			return &entities.InvalidSegmentError{Index: i, Reason: "start is negative"}
		case s.Start > MaxStartSeconds:
			return &entities.InvalidSegmentError{Index: i, Reason: "start is out of range"}
		}
	}
	return nil
}

// Concat joins chunk texts in order
func Concat(chunks []entities.GroupedChunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}

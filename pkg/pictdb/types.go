package pictdb

import "fmt"

// Resolution identifies which materialized size of a picture an operation
// targets. The three values and their meaning are fixed by spec.md §3/§6.
type Resolution int

// String renders the canonical lowercase name of the resolution.
func (r Resolution) String() string {
	switch r {
	case Thumb:
		return "thumbnail"
	case Small:
		return "small"
	case Original:
		return "original"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution maps the text forms accepted by the CLI/HTTP
// collaborators (spec.md §6) to a Resolution value.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "thumb", "thumbnail":
		return Thumb, nil
	case "small":
		return Small, nil
	case "orig", "original":
		return Original, nil
	default:
		return 0, newErr(KindResolutions, "ParseResolution", fmt.Errorf("unknown resolution %q", s))
	}
}

// Mode selects read-only or read-write access for Open.
type Mode int

const (
	// ReadWrite opens the database for both reads and mutations.
	ReadWrite Mode = iota
	// ReadOnly opens the database for reads only; mutating operations
	// fail with KindInvalidArgument.
	ReadOnly
)

// Dimensions is a (width, height) pair in pixels, used for the thumbnail
// and small resized resolutions.
type Dimensions struct {
	Width  uint16
	Height uint16
}

// Config carries the parameters needed to create a new database
// (spec.md §4.6 create).
type Config struct {
	// MaxFiles is the fixed slot-table capacity. Must be in [1, MaxFilesLimit].
	MaxFiles uint32
	// ThumbRes is the target size for the THUMB resolution. Each dimension
	// must be in [1, ThumbResCap].
	ThumbRes Dimensions
	// SmallRes is the target size for the SMALL resolution. Each dimension
	// must be in [1, SmallResCap].
	SmallRes Dimensions
}

// DefaultConfig returns the spec.md §4.6 defaults: 10 slots, 64x64
// thumbnails, 256x256 small images.
func DefaultConfig() Config {
	return Config{
		MaxFiles: 10,
		ThumbRes: Dimensions{Width: 64, Height: 64},
		SmallRes: Dimensions{Width: 256, Height: 256},
	}
}

// ListMode selects the rendering of [Db.List].
type ListMode int

const (
	// ListStdout renders a human-readable header + slot dump.
	ListStdout ListMode = iota
	// ListJSON renders {"Pictures": [id, ...]}.
	ListJSON
)

// pictureListDoc is the JSON document shape for ListJSON, per spec.md §4.6.
type pictureListDoc struct {
	Pictures []string `json:"Pictures"`
}

package episode

import "fmt"

// Pattern names the heuristic that produced an identity.
type Pattern string

const (
	PatternSeasonEpisode Pattern = "sxxexx"
	PatternCross         Pattern = "nxn"
	PatternUnified       Pattern = "unified"
)

// Identity is the inferred show, season, and episode of a media file.
type Identity struct {
	ShowName  string
	Season    int
	Episode   int
	Extension string
	Pattern   Pattern
}

// Key groups files believed to hold the same episode.
type Key struct {
	ShowName string
	Season   int
	Episode  int
}

// Key returns the duplicate-detection key for the identity.
func (id Identity) Key() Key {
	return Key{ShowName: id.ShowName, Season: id.Season, Episode: id.Episode}
}

// FormattedFilename renders the canonical file name, e.g. "Show S01E02.mkv".
// Season and episode are padded to a minimum of two digits.
func (id Identity) FormattedFilename() string {
	return id.Key().String() + id.Extension
}

// SeasonDir returns the season directory name used by the library layout.
func (id Identity) SeasonDir() string {
	return fmt.Sprintf("Season %d", id.Season)
}

func (k Key) String() string {
	label := fmt.Sprintf("S%02dE%02d", k.Season, k.Episode)
	if k.ShowName == "" {
		return label
	}
	return k.ShowName + " " + label
}

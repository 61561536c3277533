package episode

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type explicitRule struct {
	pattern Pattern
	re      *regexp.Regexp
}

// explicitRules are tried in order; the first match wins.
var explicitRules = []explicitRule{
	{pattern: PatternSeasonEpisode, re: regexp.MustCompile(`(?i)S(\d+)\.?E(\d+)`)},
	{pattern: PatternCross, re: regexp.MustCompile(`(\d+)x(\d+)`)},
}

var (
	unifiedNumber = regexp.MustCompile(`\d{3,4}`)
	separators    = strings.NewReplacer(".", " ", "-", " ", "_", " ")
)

// Parse infers the identity of a file name. The extension is stripped before
// matching and preserved verbatim on the result.
func Parse(name string) (Identity, error) {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	id, err := ParseBase(strings.TrimSuffix(name, ext))
	if err != nil {
		return Identity{}, err
	}
	id.Extension = ext
	return id, nil
}

// ParseBase infers the identity of an extension-less base name.
func ParseBase(base string) (Identity, error) {
	for _, rule := range explicitRules {
		loc := rule.re.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}
		season, err := strconv.Atoi(base[loc[2]:loc[3]])
		if err != nil {
			return Identity{}, &ParseError{Reason: "season number out of range", Input: base}
		}
		episode, err := strconv.Atoi(base[loc[4]:loc[5]])
		if err != nil {
			return Identity{}, &ParseError{Reason: "episode number out of range", Input: base}
		}
		return Identity{
			ShowName: CleanShowName(base[:loc[0]]),
			Season:   season,
			Episode:  episode,
			Pattern:  rule.pattern,
		}, nil
	}

	// 304 => S03E04, 1012 => S10E12
	if loc := unifiedNumber.FindStringIndex(base); loc != nil {
		unified, err := strconv.Atoi(base[loc[0]:loc[1]])
		if err != nil {
			return Identity{}, &ParseError{Reason: "episode number out of range", Input: base}
		}
		return Identity{
			ShowName: CleanShowName(base[:loc[0]]),
			Season:   unified / 100,
			Episode:  unified % 100,
			Pattern:  PatternUnified,
		}, nil
	}

	return Identity{}, &ParseError{Reason: ErrNoIdentity.Error(), Input: base}
}

// CleanShowName turns the raw text preceding an episode marker into a display
// name: separators become spaces, whitespace runs collapse, and every word is
// capitalized.
func CleanShowName(raw string) string {
	collapsed := strings.Join(strings.Fields(separators.Replace(raw)), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(collapsed)
}

// Package episode infers television episode identities from file names.
//
// Parse applies an ordered list of season/episode heuristics to a base name
// (explicit SxxEyy, then NxM, then a unified three or four digit number) and
// normalizes the text preceding the match into a title-cased show name. The
// result is an immutable Identity value; nothing is cached between calls, so
// parsing the same name twice always yields the same identity.
//
// The unified fallback is intentionally lossy: a run of digits in a title may
// be a year or a resolution rather than an episode number. Callers that need
// stronger guarantees must rename the file with an explicit pattern.
package episode

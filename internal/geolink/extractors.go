package geolink

import "regexp"

// number matches an optionally signed decimal with an optional fraction.
const number = `([-+]?\d+(?:\.\d+)?)`

// Extractor pulls the raw latitude and longitude substrings out of a link
// using one known URL shape. Each pattern is anchored on the separator that
// introduces the pair, so zoom levels ("17z") and place ids never match.
type Extractor struct {
	Name    string
	pattern *regexp.Regexp
}

func newExtractor(name, expr string) Extractor {
	return Extractor{Name: name, pattern: regexp.MustCompile(expr)}
}

// match returns the latitude and longitude substrings of the first match.
func (e Extractor) match(link string) (lat, lng string, ok bool) {
	m := e.pattern.FindStringSubmatch(link)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Extractor names, in precedence order.
const (
	ExtractorAtSegment  = "at-segment"
	ExtractorQueryParam = "query-param"
	ExtractorPlacePath  = "place-path"
)

// extractors is the precedence list used by Parse. The first extractor that
// matches decides the outcome; later ones are never consulted, even when the
// first match fails numeric conversion.
//
// Order matters because the shapes overlap: a /place/ link usually also
// carries an "@lat,lng" viewport segment, and that segment is the precise
// one. Do not reorder without updating the precedence tests.
var extractors = []Extractor{
	// .../maps/@6.9271,79.8612,15z or .../place/Foo/@6.9271,79.8612,17z
	newExtractor(ExtractorAtSegment, `@`+number+`,`+number),
	// https://maps.google.com/?q=6.9271,79.8612 (comma may be URL-encoded)
	newExtractor(ExtractorQueryParam, `[?&]q=`+number+`(?:,|%2[Cc])\s*`+number),
	// https://www.google.com/maps/place/Name/6.9271,79.8612
	newExtractor(ExtractorPlacePath, `/place/(?:[^/?#]+/)*?`+number+`,`+number),
}

// Extractors returns a copy of the precedence list.
func Extractors() []Extractor {
	out := make([]Extractor, len(extractors))
	copy(out, extractors)
	return out
}

package geolink

import (
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		want   domain.Coordinates
		wantOK bool
	}{
		{
			name:   "at segment wins over place path",
			link:   "https://maps.example.com/place/Foo/@7.0675882,79.9597962,17z",
			want:   domain.Coordinates{Lat: 7.0675882, Lng: 79.9597962},
			wantOK: true,
		},
		{
			name:   "query parameter",
			link:   "https://maps.example.com/?q=6.9271,79.8612",
			want:   domain.Coordinates{Lat: 6.9271, Lng: 79.8612},
			wantOK: true,
		},
		{
			name:   "query parameter after another parameter",
			link:   "https://maps.google.com/maps?hl=en&q=6.9271,79.8612",
			want:   domain.Coordinates{Lat: 6.9271, Lng: 79.8612},
			wantOK: true,
		},
		{
			name:   "query parameter with encoded comma",
			link:   "https://maps.google.com/?q=6.9271%2C79.8612",
			want:   domain.Coordinates{Lat: 6.9271, Lng: 79.8612},
			wantOK: true,
		},
		{
			name:   "place path fallback",
			link:   "https://www.google.com/maps/place/Colombo+Fort/6.9344,79.8428",
			want:   domain.Coordinates{Lat: 6.9344, Lng: 79.8428},
			wantOK: true,
		},
		{
			name:   "place path with coordinates as the place name",
			link:   "https://www.google.com/maps/place/6.9344,79.8428",
			want:   domain.Coordinates{Lat: 6.9344, Lng: 79.8428},
			wantOK: true,
		},
		{
			name:   "signed values",
			link:   "https://www.google.com/maps/@-33.8688,151.2093,12z",
			want:   domain.Coordinates{Lat: -33.8688, Lng: 151.2093},
			wantOK: true,
		},
		{
			name:   "integer coordinates without zoom",
			link:   "https://www.google.com/maps/@7,80",
			want:   domain.Coordinates{Lat: 7, Lng: 80},
			wantOK: true,
		},
		{
			name:   "place without coordinates",
			link:   "https://maps.example.com/place/SomePlace",
			wantOK: false,
		},
		{
			name:   "zoom level and data ids are not coordinates",
			link:   "https://www.google.com/maps/place/Foo/data=!3m1!4b1,17z",
			wantOK: false,
		},
		{
			name:   "empty",
			link:   "",
			wantOK: false,
		},
		{
			name:   "not a url",
			link:   "not a url at all",
			wantOK: false,
		},
		{
			name:   "out of range latitude is a miss",
			link:   "https://www.google.com/maps/@123.5,80.1,10z",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCoordinates(tt.link)
			if ok != tt.wantOK {
				t.Fatalf("ParseCoordinates(%q) ok = %v, want %v", tt.link, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("ParseCoordinates(%q) = %+v, want %+v", tt.link, got, tt.want)
			}
		})
	}
}

func TestParseReportsExtractor(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://www.google.com/maps/place/X/6.1,80.1/@7.2,80.3,15z", ExtractorAtSegment},
		{"https://maps.google.com/?q=6.9271,79.8612", ExtractorQueryParam},
		{"https://www.google.com/maps/place/X/6.1,80.1?q=7.2,80.3", ExtractorQueryParam},
		{"https://www.google.com/maps/place/X/6.1,80.1", ExtractorPlacePath},
	}

	for _, tt := range tests {
		m, ok := Parse(tt.link)
		if !ok {
			t.Fatalf("Parse(%q) found nothing", tt.link)
		}
		if m.Extractor != tt.want {
			t.Errorf("Parse(%q) extractor = %q, want %q", tt.link, m.Extractor, tt.want)
		}
	}
}

func TestParseFindsAtSegmentAnywhere(t *testing.T) {
	pairs := []domain.Coordinates{
		{Lat: 6.9271, Lng: 79.8612},
		{Lat: -1.5, Lng: -78.25},
		{Lat: 0, Lng: 0},
		{Lat: 89.999999, Lng: 179.999999},
	}
	wrappers := []string{
		"https://www.google.com/maps/@%s,15z",
		"https://www.google.com/maps/place/Somewhere/@%s,17z/data=!3m1!4b1",
		"https://www.google.com/maps/search/police/@%s,13z?entry=ttu",
		"prefix text https://maps.google.com/maps/dir//@%s",
	}

	for _, c := range pairs {
		for _, w := range wrappers {
			link := fmt.Sprintf(w, fmt.Sprintf("%v,%v", c.Lat, c.Lng))
			got, ok := ParseCoordinates(link)
			if !ok || got != c {
				t.Errorf("ParseCoordinates(%q) = %+v, %v; want %+v", link, got, ok, c)
			}
		}
	}
}

func TestExtractorsPrecedence(t *testing.T) {
	want := []string{ExtractorAtSegment, ExtractorQueryParam, ExtractorPlacePath}

	got := Extractors()
	if len(got) != len(want) {
		t.Fatalf("len(Extractors()) = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Name != want[i] {
			t.Errorf("Extractors()[%d] = %q, want %q", i, e.Name, want[i])
		}
	}

	// The returned slice is a copy.
	got[0] = Extractor{Name: "tampered"}
	if Extractors()[0].Name != ExtractorAtSegment {
		t.Fatal("Extractors() exposed the package precedence list")
	}
}

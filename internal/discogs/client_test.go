package discogs

import "testing"

func TestConvertRelease(t *testing.T) {
	raw := &releaseResponse{
		ID:    1029512,
		Title: "Abraxas",
		Year:  1970,
		Artists: []artistResult{
			{Name: "Santana"},
		},
		Images: []imageResult{
			{Type: "secondary", URI: "https://img.discogs.com/back.jpg"},
			{Type: "primary", URI: "https://img.discogs.com/front.jpg"},
		},
		Tracklist: []trackResult{
			{Position: "", Type: "heading", Title: "Side A"},
			{Position: "A1", Type: "track", Title: "Singing Winds, Crying Beasts", Duration: "4:48"},
			{Position: "A2", Type: "track", Title: "Black Magic Woman / Gypsy Queen", Duration: "5:17"},
			{Position: "B1", Type: "track", Title: "Incident At Neshabur", Duration: ""},
		},
	}

	rel := convertRelease(raw)

	if rel.Artist != "Santana" {
		t.Errorf("Artist = %q, want Santana", rel.Artist)
	}
	if rel.ArtworkURL != "https://img.discogs.com/front.jpg" {
		t.Errorf("ArtworkURL = %q, want the primary image", rel.ArtworkURL)
	}
	if len(rel.Tracks) != 3 {
		t.Fatalf("len(Tracks) = %d, want 3 (heading skipped)", len(rel.Tracks))
	}
	if rel.Tracks[0].Position != "A1" || rel.Tracks[0].DurationSeconds != 288 {
		t.Errorf("Tracks[0] = %+v, want A1 at 288s", rel.Tracks[0])
	}
	if rel.Tracks[2].DurationSeconds != 0 {
		t.Errorf("Tracks[2].DurationSeconds = %d, want 0 for missing duration", rel.Tracks[2].DurationSeconds)
	}
	for _, tr := range rel.Tracks {
		if tr.Album != "Abraxas" {
			t.Errorf("track %s Album = %q, want Abraxas", tr.Position, tr.Album)
		}
		if tr.ArtworkURL != rel.ArtworkURL {
			t.Errorf("track %s ArtworkURL = %q, want release artwork", tr.Position, tr.ArtworkURL)
		}
	}
}

func TestConvertRelease_TrackArtistOverride(t *testing.T) {
	raw := &releaseResponse{
		Title:   "Split Single",
		Artists: []artistResult{{Name: "Various"}},
		Tracklist: []trackResult{
			{Position: "A", Title: "One", Artists: []artistResult{{Name: "Band A"}}},
			{Position: "B", Title: "Two"},
		},
	}

	rel := convertRelease(raw)

	if rel.Tracks[0].Artist != "Band A" {
		t.Errorf("Tracks[0].Artist = %q, want Band A", rel.Tracks[0].Artist)
	}
	if rel.Tracks[1].Artist != "Various" {
		t.Errorf("Tracks[1].Artist = %q, want release artist", rel.Tracks[1].Artist)
	}
}

func TestExtractArtist_JoinPhrases(t *testing.T) {
	tests := []struct {
		credits []artistResult
		want    string
	}{
		{nil, ""},
		{[]artistResult{{Name: "Santana"}}, "Santana"},
		{[]artistResult{{Name: "Miles Davis", Join: "&"}, {Name: "John Coltrane"}}, "Miles Davis & John Coltrane"},
		{[]artistResult{{Name: "A"}, {Name: "B"}}, "A, B"},
		{[]artistResult{{Name: "A", Join: ","}, {Name: "B"}}, "A, B"},
	}
	for _, tt := range tests {
		if got := extractArtist(tt.credits); got != tt.want {
			t.Errorf("extractArtist(%v) = %q, want %q", tt.credits, got, tt.want)
		}
	}
}

package tracklist

import "sort"

// Session maintains the track collection and the current-track cursor.
//
// Navigation follows ascending Position order (plain byte-wise string
// comparison), which can differ from storage order when tracks arrive from
// unordered search results. The cursor itself always indexes storage order;
// each move sorts, steps within the sorted view, then resolves back to the
// storage index. The comparison is deliberately not numeric-aware, so "A10"
// orders before "A2".
type Session struct {
	tracks  []Track
	current int
}

// NewSession creates an empty session (no release loaded).
func NewSession() *Session {
	return &Session{}
}

// Load replaces the full track set. The cursor resets to the first track in
// storage order. An empty list is valid and means "no release loaded".
func (s *Session) Load(tracks []Track) {
	s.tracks = make([]Track, len(tracks))
	copy(s.tracks, tracks)
	s.current = 0
}

// Current returns a copy of the current track, or nil if the session is empty.
func (s *Session) Current() *Track {
	if len(s.tracks) == 0 {
		return nil
	}
	t := s.tracks[s.current]
	return &t
}

// CurrentIndex returns the storage index of the current track, or -1 if the
// session is empty.
func (s *Session) CurrentIndex() int {
	if len(s.tracks) == 0 {
		return -1
	}
	return s.current
}

// Tracks returns a copy of all tracks in storage order.
func (s *Session) Tracks() []Track {
	result := make([]Track, len(s.tracks))
	copy(result, s.tracks)
	return result
}

// Len returns the number of tracks.
func (s *Session) Len() int {
	return len(s.tracks)
}

// Advance moves to the next track in position order. Returns false without
// moving when the session is empty or already at the last track.
func (s *Session) Advance() bool {
	return s.step(1)
}

// GoBack moves to the previous track in position order. Returns false without
// moving when the session is empty or already at the first track.
func (s *Session) GoBack() bool {
	return s.step(-1)
}

// HasNext reports whether a track follows the current one in position order.
func (s *Session) HasNext() bool {
	if len(s.tracks) == 0 {
		return false
	}
	order := s.sortOrder()
	return s.rank(order)+1 < len(order)
}

// Select moves the cursor to the first track in storage order whose Position
// equals the given one. Returns false without moving if no track matches.
func (s *Session) Select(position string) bool {
	for i := range s.tracks {
		if s.tracks[i].Position == position {
			s.current = i
			return true
		}
	}
	return false
}

// SelectFirst repositions the cursor to the first track in position order.
// No-op on an empty session.
func (s *Session) SelectFirst() {
	if len(s.tracks) == 0 {
		return
	}
	s.current = s.sortOrder()[0]
}

func (s *Session) step(delta int) bool {
	if len(s.tracks) < 2 {
		return false
	}
	order := s.sortOrder()
	r := s.rank(order) + delta
	if r < 0 || r >= len(order) {
		return false
	}
	s.current = order[r]
	return true
}

// sortOrder returns storage indices in ascending Position order. The sort is
// stable over storage order, so duplicate positions resolve deterministically.
func (s *Session) sortOrder() []int {
	order := make([]int, len(s.tracks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.tracks[order[a]].Position < s.tracks[order[b]].Position
	})
	return order
}

// rank returns the position of the cursor within the sorted view.
func (s *Session) rank(order []int) int {
	for r, idx := range order {
		if idx == s.current {
			return r
		}
	}
	return 0
}

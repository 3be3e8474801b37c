package tablestate

import (
	"net/url"
	"sync"
)

// Sink is the externally observable key-value store mirroring a view state,
// usually a URL query string. Replace overwrites the whole query, it never
// appends history.
type Sink interface {
	Query() url.Values
	Replace(values url.Values)
}

// URLSink mirrors the state into a URL's raw query.
type URLSink struct {
	mu       sync.Mutex
	u        url.URL
	replaced int
}

func NewURLSink(u *url.URL) *URLSink {
	s := &URLSink{}
	if u != nil {
		s.u = *u
	}
	return s
}

func (s *URLSink) Query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.u.Query()
}

func (s *URLSink) Replace(values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded := values.Encode()
	if encoded == s.u.RawQuery {
		return
	}
	s.u.RawQuery = encoded
	s.replaced++
}

// URL returns a copy of the current URL.
func (s *URLSink) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.u
	return &u
}

// Replaced reports how many writes changed the query.
func (s *URLSink) Replaced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaced
}

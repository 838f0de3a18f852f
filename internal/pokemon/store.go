package pokemon

import "sync"

type Pokemon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Store is the ordered, in-memory Pokemon collection.
type Store struct {
	mu   sync.RWMutex
	list []Pokemon
}

func NewStore(seed ...Pokemon) *Store {
	return &Store{list: append([]Pokemon(nil), seed...)}
}

// Starters is the collection the server boots with.
func Starters() []Pokemon {
	return []Pokemon{
		{ID: 1, Name: "Bulbasaur", Type: "Grass"},
		{ID: 2, Name: "Charmander", Type: "Fire"},
		{ID: 3, Name: "Squirtle", Type: "Water"},
	}
}

// Add appends a Pokemon whose ID is the collection length + 1.
func (s *Store) Add(name, typ string) Pokemon {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Pokemon{ID: len(s.list) + 1, Name: name, Type: typ}
	s.list = append(s.list, p)
	return p
}

func (s *Store) All() []Pokemon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Pokemon(nil), s.list...)
}

func (s *Store) Get(id int) (Pokemon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.list {
		if p.ID == id {
			return p, true
		}
	}
	return Pokemon{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.list)
}

package words

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/wordduel/wordduel/internal/dependencies/random"
	"github.com/wordduel/wordduel/internal/model"
)

// DefaultWords is the built-in word list used when no file is configured
var DefaultWords = []string{"APPLE", "BANANA", "MANGO", "PEACH", "GRAPE", "ORANGE"}

// Service provides the secret-word list for new games
type Service struct {
	random random.Random

	mu    sync.RWMutex
	words []string
}

// New creates a word service seeded with the built-in list
func New(rnd random.Random) *Service {
	s := &Service{random: rnd}
	_ = s.LoadWords(DefaultWords)
	return s
}

// LoadFromFile replaces the word list with the contents of a file, one word
// per line. Blank lines are skipped; words are uppercased.
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, strings.ToUpper(word))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return s.LoadWords(words)
}

// LoadWords replaces the word list (useful for testing)
func (s *Service) LoadWords(words []string) error {
	if len(words) == 0 {
		return model.ErrWordsNotReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make([]string, len(words))
	for i, w := range words {
		s.words[i] = strings.ToUpper(w)
	}
	return nil
}

// Pick returns a uniformly random word from the list
func (s *Service) Pick() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.words) == 0 {
		return "", model.ErrWordsNotReady
	}
	return s.words[s.random.Intn(len(s.words))], nil
}

// WordCount returns the number of words available
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

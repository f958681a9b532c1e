package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// defaultWords is the built-in vocabulary: short, drawable nouns.
var defaultWords = []string{
	"apple", "airplane", "anchor", "banana", "basket", "bridge", "butterfly",
	"cactus", "camera", "candle", "castle", "caterpillar", "chair", "cloud",
	"compass", "crown", "dolphin", "dragon", "drum", "elephant", "envelope",
	"feather", "fireplace", "flashlight", "flower", "fountain", "giraffe",
	"guitar", "hammer", "hamburger", "helicopter", "hourglass", "igloo",
	"island", "jellyfish", "kangaroo", "kettle", "keyboard", "kite",
	"ladder", "lantern", "lighthouse", "lobster", "mailbox", "mermaid",
	"microscope", "moustache", "mountain", "mushroom", "octopus", "ostrich",
	"paintbrush", "palmtree", "parachute", "peacock", "penguin", "piano",
	"pineapple", "pirate", "pyramid", "rainbow", "robot", "rocket",
	"sailboat", "sandcastle", "saxophone", "scarecrow", "scissors",
	"snowman", "spider", "submarine", "suitcase", "sunflower", "telescope",
	"tornado", "tractor", "treasure", "trophy", "umbrella", "unicorn",
	"volcano", "waterfall", "whale", "windmill", "wizard", "zebra",
}

// WordSupplier hands out random words from a fixed vocabulary. Repeats
// across rounds are allowed. Safe for concurrent use.
type WordSupplier struct {
	mu    sync.Mutex
	words []string
	rng   *rand.Rand
}

// NewWordSupplier builds a supplier over the given vocabulary, falling
// back to the built-in word list when none (or only blanks) are given.
func NewWordSupplier(words ...string) *WordSupplier {
	clean := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			clean = append(clean, w)
		}
	}
	if len(clean) == 0 {
		clean = defaultWords
	}
	return &WordSupplier{
		words: clean,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reseed restarts the sequence from a fixed seed.
func (s *WordSupplier) Reseed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

// Next returns a random word. Never blank.
func (s *WordSupplier) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.words[s.rng.Intn(len(s.words))]
}

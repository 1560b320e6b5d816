package password

import "fmt"

// Strategy decides where characters injected to meet minimum counts are placed.
type Strategy int

const (
	// PlaceAtRandom overwrites randomly chosen positions.
	PlaceAtRandom Strategy = iota
	// PlaceAtBeginning overwrites the leading positions, then shuffles.
	PlaceAtBeginning
	// PlaceAtEnd overwrites the trailing positions, then shuffles.
	PlaceAtEnd
)

func (s Strategy) String() string {
	switch s {
	case PlaceAtRandom:
		return "random"
	case PlaceAtBeginning:
		return "beginning"
	case PlaceAtEnd:
		return "end"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Injector tops up category counts that fall short of their minimums.
type Injector struct {
	source *SecureSource
}

// NewInjector returns an injector drawing from source.
func NewInjector(source *SecureSource) *Injector {
	return &Injector{source: source}
}

type required struct {
	char rune
	cat  Category
}

// Enforce returns password with enough characters of each constrained category.
// The length never changes. When nothing is missing the input is returned as is.
func (in *Injector) Enforce(password []rune, rules Rules, strategy Strategy) ([]rune, error) {
	counts := countRunes(password)

	var needed []required
	for _, cat := range categories {
		m := minimumFor(rules, cat)
		if m == nil {
			continue
		}
		deficit := *m - counts.Get(cat)
		if deficit <= 0 {
			continue
		}
		alphabet := categoryAlphabet(cat, rules)
		for i := 0; i < deficit; i++ {
			ch, err := in.source.Select(alphabet)
			if err != nil {
				return nil, err
			}
			needed = append(needed, required{char: ch, cat: cat})
		}
	}

	if len(needed) == 0 || len(password) == 0 {
		return password, nil
	}

	out := make([]rune, len(password))
	copy(out, password)

	switch strategy {
	case PlaceAtBeginning:
		k := min(len(needed), len(out))
		for i := 0; i < k; i++ {
			out[i] = needed[i].char
		}
		return out, in.shuffle(out)
	case PlaceAtEnd:
		k := min(len(needed), len(out))
		start := len(out) - k
		for i := 0; i < k; i++ {
			out[start+i] = needed[i].char
		}
		return out, in.shuffle(out)
	case PlaceAtRandom:
		return out, in.placeAtRandom(out, needed, rules, counts)
	default:
		return nil, fmt.Errorf("unknown placement strategy %s", strategy)
	}
}

func (in *Injector) shuffle(runes []rune) error {
	if err := in.source.Shuffle(runes); err != nil {
		return fmt.Errorf("failed to shuffle password: %w", err)
	}
	return nil
}

// placeAtRandom writes each required character to a random position. A position is
// redrawn when it already holds that character, was filled earlier in this pass, or
// holds the last characters another category needs to stay at its minimum. After
// 4*len draws the character is forced onto a random eligible position.
func (in *Injector) placeAtRandom(out []rune, needed []required, rules Rules, counts Counts) error {
	n := len(out)
	locked := make([]bool, n)
	maxDraws := 4 * n

	spare := func(pos int) bool {
		if locked[pos] {
			return false
		}
		cat := Classify(out[pos])
		m := minimumFor(rules, cat)
		return m == nil || counts.Get(cat) > *m
	}

	for _, req := range needed {
		pos := -1
		for draw := 0; draw < maxDraws; draw++ {
			p, err := in.source.Uniform(uint32(n))
			if err != nil {
				return err
			}
			if out[p] != req.char && spare(int(p)) {
				pos = int(p)
				break
			}
		}

		if pos < 0 {
			var err error
			if pos, err = in.forcedPosition(n, spare, locked); err != nil {
				return err
			}
		}

		counts.add(Classify(out[pos]), -1)
		counts.add(req.cat, 1)
		out[pos] = req.char
		locked[pos] = true
	}
	return nil
}

// forcedPosition picks uniformly among spare positions, falling back to any unlocked
// one when the minimums cannot all be met at this length.
func (in *Injector) forcedPosition(n int, spare func(int) bool, locked []bool) (int, error) {
	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if spare(i) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := 0; i < n; i++ {
			if !locked[i] {
				candidates = append(candidates, i)
			}
		}
	}
	if len(candidates) == 0 {
		idx, err := in.source.Uniform(uint32(n))
		return int(idx), err
	}
	idx, err := in.source.Uniform(uint32(len(candidates)))
	if err != nil {
		return 0, err
	}
	return candidates[idx], nil
}

package tilesource

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Template tokens.
const (
	TokenSubdomain = "{s}"
	TokenZoom      = "{z}"
	TokenRow       = "{y}"
	TokenColumn    = "{x}"
)

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Templater expands tile URL templates. Subdomains are chosen through the injected
// random source, so a seeded source gives reproducible URLs.
type Templater struct {
	rnd RandSource
}

// NewTemplater creates a Templater drawing from rnd; nil uses the process-wide source.
func NewTemplater(rnd RandSource) *Templater {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Templater{rnd: rnd}
}

// NewSeededTemplater creates a Templater with a deterministic PCG source.
func NewSeededTemplater(seed uint64) *Templater {
	return NewTemplater(rand.New(rand.NewPCG(seed, seed)))
}

// Expand substitutes every occurrence of {s}, {z}, {y} and {x} in template in a single
// pass, so substituted values are never expanded again. Tokens are matched
// case-sensitively. With an empty pool {s} is left untouched.
func (t *Templater) Expand(template string, pool []string, x, y, z int) string {
	pairs := []string{
		TokenZoom, strconv.Itoa(z),
		TokenRow, strconv.Itoa(y),
		TokenColumn, strconv.Itoa(x),
	}
	if len(pool) > 0 && strings.Contains(template, TokenSubdomain) {
		pairs = append(pairs, TokenSubdomain, pool[t.rnd.IntN(len(pool))])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

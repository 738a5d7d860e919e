package source

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	"github.com/google/uuid"
)

const placeholderBaseName = "filenamebla"

// GeneratorConfig controls placeholder record generation.
type GeneratorConfig struct {
	Count int
	Seed  uint64 // 0 picks a random seed
	Link  string
	Start time.Time        // earliest modified date
	Now   func() time.Time // latest modified date, time.Now when nil
}

// DefaultGeneratorConfig returns ten records modified since 2012-01-01.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count: 10,
		Link:  "https://google.com",
		Start: time.Date(2012, time.January, 1, 0, 0, 0, 0, time.Local),
	}
}

// Generator produces placeholder records for demos and tests.
type Generator struct {
	cfg   GeneratorConfig
	entro *rand.ChaCha8
	rng   *rand.Rand
}

// NewGenerator creates a Generator. Equal non-zero seeds give equal records.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Start.IsZero() {
		cfg.Start = DefaultGeneratorConfig().Start
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	entro := rand.NewChaCha8(key)

	return &Generator{cfg: cfg, entro: entro, rng: rand.New(entro)}
}

// FetchRecords generates Count records.
func (g *Generator) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	records := make([]documents.Record, 0, g.cfg.Count)
	for i := 0; i < g.cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := g.next()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (g *Generator) next() (documents.Record, error) {
	id, err := uuid.NewRandomFromReader(g.entro)
	if err != nil {
		return documents.Record{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	ext := documents.IconExtensions[g.rng.IntN(len(documents.IconExtensions))]
	name := strings.ToUpper(placeholderBaseName[:1]) + placeholderBaseName[1:] + "." + ext

	return documents.New(name, id.String(), documents.IconURL(ext), g.randomDate(), g.randomSize(), g.cfg.Link), nil
}

func (g *Generator) randomDate() time.Time {
	start := g.cfg.Start
	span := g.cfg.Now().Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int64N(int64(span))))
}

// randomSize returns a size between 30 and 129 KB.
func (g *Generator) randomSize() int64 {
	return int64(g.rng.IntN(100)) + 30
}

// Package main contains setstress, a stress and verification harness for
// the immutable set builder. It feeds large random and adversarial element
// streams through a Builder, checks the result against a plain map-and-slice
// model, and reports timing and whether the flooding fallback engaged.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pomerium/immutable/hashutil"
	"github.com/pomerium/immutable/set"
)

type stressOptions struct {
	count       int
	seed        int64
	adversarial bool
	quiet       bool
}

func BuildRootCmd() *cobra.Command {
	var opts stressOptions

	cmd := &cobra.Command{
		Use:          "setstress",
		Short:        "Stress the immutable set builder against a reference model",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.count <= 0 {
				return fmt.Errorf("count must be positive, got %d", opts.count)
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 100_000, "elements per round")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1234567890, "random source seed")
	cmd.Flags().BoolVar(&opts.adversarial, "adversarial", false, "also run rounds with colliding hash codes")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only report failures")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := BuildRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// A round is one element stream and the hasher to build with. A nil hasher
// means the default.
type round struct {
	name   string
	hasher hashutil.Hasher[uint64]
	gen    func(*rand.Rand) uint64
}

func buildRounds(opts stressOptions) []round {
	rounds := []round{
		{
			name: "uniform",
			gen:  func(r *rand.Rand) uint64 { return r.Uint64() },
		},
		{
			name: "dense",
			gen:  func(r *rand.Rand) uint64 { return uint64(r.Intn(opts.count/4 + 1)) },
		},
	}
	if opts.adversarial {
		rounds = append(rounds,
			round{
				name:   "constant-hash",
				hasher: hashutil.HasherFunc[uint64](func(uint64) uint64 { return 17 }),
				gen:    func(r *rand.Rand) uint64 { return uint64(r.Intn(opts.count)) },
			},
			round{
				name:   "low-entropy-hash",
				hasher: hashutil.HasherFunc[uint64](func(v uint64) uint64 { return v & 0xF }),
				gen:    func(r *rand.Rand) uint64 { return r.Uint64() },
			},
		)
	}
	return rounds
}

func run(ctx context.Context, opts stressOptions) error {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	logger := zerolog.New(console).With().Timestamp().Logger()
	if opts.quiet {
		logger = logger.Level(zerolog.WarnLevel)
	}

	for _, rd := range buildRounds(opts) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runRound(logger, console, opts, rd); err != nil {
			return fmt.Errorf("%s round: %w", rd.name, err)
		}
	}
	return nil
}

// eventCounter counts log events on their way to the console. The builder
// only ever logs when it abandons open addressing, so the count doubles as
// a fallback-engagement probe.
type eventCounter struct {
	next io.Writer
	n    int
}

func (w *eventCounter) Write(p []byte) (int, error) {
	w.n++
	return w.next.Write(p)
}

func runRound(logger zerolog.Logger, console io.Writer, opts stressOptions, rd round) error {
	if opts.quiet {
		console = io.Discard
	}
	counter := &eventCounter{next: console}
	buildLogger := zerolog.New(counter).With().Timestamp().Str("round", rd.name).Logger()

	b := set.NewBuilderConfig(set.BuilderConfig[uint64]{
		ExpectedSize: opts.count / 2,
		Hasher:       rd.hasher,
		Logger:       &buildLogger,
	})
	rng := rand.New(rand.NewSource(opts.seed))

	seen := make(map[uint64]struct{}, opts.count)
	var order []uint64

	start := time.Now()
	var mid set.Set[uint64]
	var midOrder []uint64
	for i := 0; i < opts.count; i++ {
		v := rd.gen(rng)
		b.Add(v)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			order = append(order, v)
		}
		if i == opts.count/2 {
			// checkpoint build; later adds must not leak into it
			mid = b.Build()
			midOrder = append([]uint64(nil), order...)
		}
	}
	s := b.Build()
	buildDur := time.Since(start)

	start = time.Now()
	if err := verify(s, order); err != nil {
		return err
	}
	if err := verify(mid, midOrder); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if err := verifyAbsent(s, seen, rng); err != nil {
		return err
	}
	if err := verifyReversedHash(s, order, rd.hasher, &buildLogger); err != nil {
		return err
	}
	if err := verifyReuseIsolation(s, b, seen, rng); err != nil {
		return err
	}
	verifyDur := time.Since(start)

	logger.Info().
		Str("round", rd.name).
		Int("adds", opts.count).
		Int("distinct", s.Size()).
		Bool("fallback_engaged", counter.n > 0).
		Int("fallback_events", counter.n).
		Dur("build", buildDur).
		Dur("verify", verifyDur).
		Msg("setstress: round ok")
	return nil
}

// verify checks size, iteration order, and membership against the model.
func verify(s set.Set[uint64], order []uint64) error {
	if s.Size() != len(order) {
		return fmt.Errorf("size mismatch: set %d, model %d", s.Size(), len(order))
	}
	i := 0
	for v := range s.All() {
		if order[i] != v {
			return fmt.Errorf("order mismatch at %d: set %d, model %d", i, v, order[i])
		}
		i++
	}
	for _, v := range order {
		if !s.Contains(v) {
			return fmt.Errorf("member %d reported absent", v)
		}
	}
	return nil
}

func verifyAbsent(s set.Set[uint64], seen map[uint64]struct{}, rng *rand.Rand) error {
	for range 1000 {
		v := rng.Uint64()
		if _, ok := seen[v]; ok {
			continue
		}
		if s.Contains(v) {
			return fmt.Errorf("non-member %d reported present", v)
		}
	}
	return nil
}

// verifyReversedHash rebuilds the same elements in reverse order and checks
// that the order-insensitive hash code comes out identical.
func verifyReversedHash(s set.Set[uint64], order []uint64, hasher hashutil.Hasher[uint64], logger *zerolog.Logger) error {
	rb := set.NewBuilderConfig(set.BuilderConfig[uint64]{
		ExpectedSize: len(order),
		Hasher:       hasher,
		Logger:       logger,
	})
	for i := len(order) - 1; i >= 0; i-- {
		rb.Add(order[i])
	}
	rs := rb.Build()
	if rs.Size() != s.Size() {
		return fmt.Errorf("reversed build size mismatch: %d vs %d", rs.Size(), s.Size())
	}
	if rs.Hash() != s.Hash() {
		return fmt.Errorf("hash depends on insertion order: %#x vs %#x", rs.Hash(), s.Hash())
	}
	return nil
}

// verifyReuseIsolation adds one more element through the builder and checks
// the already built set cannot see it.
func verifyReuseIsolation(s set.Set[uint64], b *set.Builder[uint64], seen map[uint64]struct{}, rng *rand.Rand) error {
	extra := rng.Uint64()
	for {
		if _, ok := seen[extra]; !ok {
			break
		}
		extra = rng.Uint64()
	}
	before := s.Size()
	b.Add(extra)
	if s.Contains(extra) {
		return fmt.Errorf("built set sees element %d added afterwards", extra)
	}
	if s.Size() != before {
		return fmt.Errorf("built set size changed from %d to %d after builder reuse", before, s.Size())
	}
	return nil
}

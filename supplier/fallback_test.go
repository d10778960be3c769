package supplier

import (
	"context"
	"errors"
	"iter"
	"testing"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/model"
)

// countingSupplier wraps another supplier and counts lookups, so tests can
// assert whether the fallback leg was consulted at all.
type countingSupplier struct {
	EntitySupplier
	guildLookups   int
	channelScans   int
	messageLookups int
}

func newCountingSupplier(inner EntitySupplier) *countingSupplier {
	return &countingSupplier{EntitySupplier: inner}
}

func (s *countingSupplier) GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	s.guildLookups++
	return s.EntitySupplier.GetGuildOrNil(ctx, id)
}

func (s *countingSupplier) GetMessageOrNil(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	s.messageLookups++
	return s.EntitySupplier.GetMessageOrNil(ctx, channelID, messageID)
}

func (s *countingSupplier) GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error] {
	s.channelScans++
	return s.EntitySupplier.GetGuildChannels(ctx, guildID)
}

// faultySupplier fails its guild lookups and channel scans.
type faultySupplier struct {
	EntitySupplier
	err error
}

func (s *faultySupplier) GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	return nil, s.err
}

func (s *faultySupplier) GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error] {
	return func(yield func(model.Channel, error) bool) {
		yield(model.Channel{}, s.err)
	}
}

func emptyCacheSupplier() *CacheSupplier {
	return NewCacheSupplier(cache.New())
}

func TestFallbackSingleHitShortCircuits(t *testing.T) {
	t.Parallel()

	second := newCountingSupplier(newPopulatedCacheSupplier())
	s := WithFallback(newPopulatedCacheSupplier(), second)

	g, err := s.GetGuildOrNil(context.Background(), 1)
	if err != nil || g == nil {
		t.Fatalf("GetGuildOrNil = (%v, %v)", g, err)
	}
	if second.guildLookups != 0 {
		t.Fatalf("fallback consulted %d times on a first-supplier hit", second.guildLookups)
	}
}

func TestFallbackSingleMissConsultsSecond(t *testing.T) {
	t.Parallel()

	second := newCountingSupplier(newPopulatedCacheSupplier())
	s := WithFallback(emptyCacheSupplier(), second)

	g, err := s.GetGuildOrNil(context.Background(), 1)
	if err != nil || g == nil || g.Name != "guild" {
		t.Fatalf("GetGuildOrNil = (%+v, %v), want the fallback's record", g, err)
	}
	if second.guildLookups != 1 {
		t.Fatalf("fallback consulted %d times, want 1", second.guildLookups)
	}
}

func TestFallbackDoubleMiss(t *testing.T) {
	t.Parallel()

	s := WithFallback(emptyCacheSupplier(), emptyCacheSupplier())
	ctx := context.Background()

	if g, err := s.GetGuildOrNil(ctx, 1); err != nil || g != nil {
		t.Fatalf("GetGuildOrNil = (%v, %v), want (nil, nil)", g, err)
	}
	if _, err := s.GetGuild(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGuild error = %v, want ErrNotFound", err)
	}
}

func TestFallbackErrorDoesNotTriggerSecond(t *testing.T) {
	t.Parallel()

	boom := &RemoteError{Status: 500, Err: errors.New("internal server error")}
	second := newCountingSupplier(newPopulatedCacheSupplier())
	s := WithFallback(&faultySupplier{EntitySupplier: emptyCacheSupplier(), err: boom}, second)

	_, err := s.GetGuildOrNil(context.Background(), 1)
	var re *RemoteError
	if !errors.As(err, &re) || re.Status != 500 {
		t.Fatalf("error = %v, want the first supplier's RemoteError", err)
	}
	if second.guildLookups != 0 {
		t.Fatalf("fallback consulted %d times after a failure", second.guildLookups)
	}
}

func TestFallbackCollectionSwitchesWhenEmpty(t *testing.T) {
	t.Parallel()

	s := WithFallback(emptyCacheSupplier(), newPopulatedCacheSupplier())
	chans, err := collect(s.GetGuildChannels(context.Background(), 1))
	if err != nil {
		t.Fatalf("GetGuildChannels failed: %v", err)
	}
	if len(chans) != 2 {
		t.Fatalf("got %d channels, want the fallback's 2", len(chans))
	}
}

func TestFallbackCollectionDoesNotSwitchOnProduction(t *testing.T) {
	t.Parallel()

	first := newPopulatedCacheSupplier()
	first.Cache().Put(cache.Channels, model.Snowflake(13), model.Channel{ID: 13, GuildID: 1})

	s := WithFallback(first, newPopulatedCacheSupplier())
	chans, err := collect(s.GetGuildChannels(context.Background(), 1))
	if err != nil {
		t.Fatalf("GetGuildChannels failed: %v", err)
	}
	// 3 from the first supplier, none from the fallback
	if len(chans) != 3 {
		t.Fatalf("got %d channels, want only the first supplier's 3", len(chans))
	}
}

func TestFallbackCollectionErrorCountsAsProduction(t *testing.T) {
	t.Parallel()

	boom := &RemoteError{Status: 502, Err: errors.New("bad gateway")}
	second := newCountingSupplier(newPopulatedCacheSupplier())
	s := WithFallback(&faultySupplier{EntitySupplier: emptyCacheSupplier(), err: boom}, second)

	_, err := collect(s.GetGuildChannels(context.Background(), 1))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the first supplier's failure", err)
	}
	if second.channelScans != 0 {
		t.Fatalf("fallback scanned %d times after a failed sequence", second.channelScans)
	}
}

func TestFallbackLimitedOpValidation(t *testing.T) {
	t.Parallel()

	s := WithFallback(emptyCacheSupplier(), newPopulatedCacheSupplier())
	if _, err := s.GetGuildMembers(context.Background(), 1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("GetGuildMembers(limit=0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestFallbackLimitedOpSwitchesWhenEmpty(t *testing.T) {
	t.Parallel()

	s := WithFallback(emptyCacheSupplier(), newPopulatedCacheSupplier())
	seq, err := s.GetMessagesBefore(context.Background(), 10, 205, 100)
	if err != nil {
		t.Fatalf("GetMessagesBefore failed: %v", err)
	}
	msgs, err := collect(seq)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want the fallback's 5", len(msgs))
	}
}

func TestFallbackChains(t *testing.T) {
	t.Parallel()

	third := newCountingSupplier(newPopulatedCacheSupplier())
	s := WithFallback(emptyCacheSupplier(), WithFallback(emptyCacheSupplier(), third))

	m, err := s.GetMessageOrNil(context.Background(), 10, 205)
	if err != nil || m == nil || m.ID != 205 {
		t.Fatalf("GetMessageOrNil = (%v, %v), want message 205 from the chain tail", m, err)
	}
	if third.messageLookups != 1 {
		t.Fatalf("chain tail consulted %d times, want 1", third.messageLookups)
	}
}

package chronicle_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle"
	"github.com/hearthforge/chronicle/assert"
	"github.com/hearthforge/chronicle/eventlog"
	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/roll"
	"github.com/hearthforge/chronicle/types"
)

func testConfig() chronicle.Config {
	return chronicle.Config{
		Namespace:  "testcampaign",
		LogBackend: chronicle.LogBackendMemory,
		LogLevel:   "disabled",
	}
}

func newEngineForTest(t *testing.T, opts ...chronicle.Option) *chronicle.Engine {
	t.Helper()
	opts = append([]chronicle.Option{
		chronicle.WithLogger(zerolog.Nop()),
		chronicle.WithIDSource(roll.NewSequentialIDs("entry")),
		chronicle.WithClock(func() time.Time { return time.UnixMilli(1700000000000).UTC() }),
	}, opts...)
	engine, err := chronicle.New(testConfig(), opts...)
	assert.NilError(t, err)
	return engine
}

// campaignEvents is a full session: two characters, an encounter, a lethal
// attack, looting the corpse, equipping the loot and settling a debt.
func campaignEvents() []types.Event {
	return []types.Event{
		types.CharacterCreationStarted{
			CharacterID: "hero", Name: "Edda", Class: "fighter",
			Strength: 16, Dexterity: 12, Constitution: 14,
			MaxHealth: 20, StartingSilver: 50, Capacity: 30,
			StartingItems: []types.Item{{Name: "longsword", Weight: 3, Damage: "1d8"}},
		},
		types.CharacterCreationStarted{
			CharacterID: "goblin", Name: "Snag", Class: "raider",
			Strength: 8, Dexterity: 14, Constitution: 10,
			MaxHealth: 8, StartingSilver: 0, Capacity: 10,
			StartingItems: []types.Item{{Name: "dagger", Weight: 1, Damage: "1d4"}},
		},
		types.EncounterStarted{
			EncounterID:  "skirmish",
			Participants: []types.EntityID{"hero", "goblin"},
			Rolls:        []int{14, 9},
		},
		types.AttackPerformed{AttackerID: "hero", TargetID: "goblin", AttackRoll: 15, DamageRoll: 5},
		types.ItemLooted{LooterID: "hero", SourceID: "goblin", ItemName: "dagger"},
		types.ItemEquipped{OwnerID: "hero", ItemName: "longsword", Slot: "mainHand"},
		types.CurrencyTransferred{FromID: "hero", ToID: "goblin", Silver: 12},
		types.TurnEnded{EncounterID: "skirmish"},
	}
}

func TestCommittedEventsShapeTheReadModel(t *testing.T) {
	engine := newEngineForTest(t)
	ctx := context.Background()

	for _, event := range campaignEvents() {
		entry, err := engine.Submit(ctx, event)
		assert.NilError(t, err)
		assert.Assert(t, entry.Seq > 0)
	}

	// The attack dealt 5+3 damage against the goblin's 8 health.
	goblin, err := engine.Entity("goblin")
	assert.NilError(t, err)
	c, _ := goblin.Component(types.KindHealth)
	assert.Equal(t, c.(types.Health).Current, 0)
	assert.True(t, goblin.Has(types.KindTrauma))
	assert.True(t, goblin.Has(types.KindCorpse))

	hero, err := engine.Entity("hero")
	assert.NilError(t, err)
	c, _ = hero.Component(types.KindInventory)
	_, hasDagger := c.(types.Inventory).Item("dagger")
	assert.True(t, hasDagger)
	c, _ = hero.Component(types.KindEquipment)
	assert.Equal(t, c.(types.Equipment).MainHand, "longsword")
	c, _ = hero.Component(types.KindPurse)
	assert.Equal(t, c.(types.Purse).Silver, 38)

	skirmish, err := engine.Entity("skirmish")
	assert.NilError(t, err)
	c, _ = skirmish.Component(types.KindEncounter)
	enc := c.(types.Encounter)
	assert.DeepEqual(t, enc.TurnOrder, []types.EntityID{"hero", "goblin"})
	assert.Equal(t, enc.ActiveIndex, 1)

	snapshot, err := engine.Snapshot(ctx)
	assert.NilError(t, err)
	assert.Equal(t, snapshot.ProcessedEvents, uint64(len(campaignEvents())))
	assert.Equal(t, snapshot.TotalEvents, uint64(len(campaignEvents())))
	assert.Len(t, snapshot.Entities, 3)
}

func TestReplayReproducesEveryPrefixOfTheLog(t *testing.T) {
	live := newEngineForTest(t)
	ctx := context.Background()

	var wantByPrefix [][]types.Entity
	for _, event := range campaignEvents() {
		_, err := live.Submit(ctx, event)
		assert.NilError(t, err)
		snapshot, err := live.Snapshot(ctx)
		assert.NilError(t, err)
		wantByPrefix = append(wantByPrefix, snapshot.Entities)
	}

	for prefix := 1; prefix <= len(wantByPrefix); prefix++ {
		replayed := newEngineForTest(t, chronicle.WithEventLog(live.Log()))
		assert.NilError(t, replayed.ReplayTo(ctx, uint64(prefix)))

		snapshot, err := replayed.Snapshot(ctx)
		assert.NilError(t, err)
		assert.Equal(t, snapshot.ProcessedEvents, uint64(prefix))
		assert.DeepEqual(t, snapshot.Entities, wantByPrefix[prefix-1])
	}
}

func TestFullReplayMatchesTheLiveRun(t *testing.T) {
	live := newEngineForTest(t)
	ctx := context.Background()
	for _, event := range campaignEvents() {
		_, err := live.Submit(ctx, event)
		assert.NilError(t, err)
	}
	liveSnapshot, err := live.Snapshot(ctx)
	assert.NilError(t, err)

	replayed := newEngineForTest(t, chronicle.WithEventLog(live.Log()))
	assert.NilError(t, replayed.Replay(ctx))

	snapshot, err := replayed.Snapshot(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, snapshot.Entities, liveSnapshot.Entities)
}

func TestReplayThroughRedisBackedLog(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisLog := eventlog.NewRedisLog(client, "testcampaign", eventlog.DefaultRegistry())

	live := newEngineForTest(t, chronicle.WithEventLog(redisLog))
	ctx := context.Background()
	for _, event := range campaignEvents() {
		_, err := live.Submit(ctx, event)
		assert.NilError(t, err)
	}
	liveSnapshot, err := live.Snapshot(ctx)
	assert.NilError(t, err)

	replayed := newEngineForTest(t, chronicle.WithEventLog(redisLog))
	assert.NilError(t, replayed.Replay(ctx))

	snapshot, err := replayed.Snapshot(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, snapshot.Entities, liveSnapshot.Entities)
}

func TestRejectedEventLeavesNoTrace(t *testing.T) {
	engine := newEngineForTest(t)
	ctx := context.Background()
	_, err := engine.Submit(ctx, campaignEvents()[0])
	assert.NilError(t, err)

	// More silver than the hero holds.
	_, err = engine.Submit(ctx, types.CurrencyTransferred{FromID: "hero", ToID: "hero", Silver: 999})
	assert.ErrorContains(t, err, "insufficient funds")

	snapshot, err := engine.Snapshot(ctx)
	assert.NilError(t, err)
	assert.Equal(t, snapshot.TotalEvents, uint64(1))

	hero, err := engine.Entity("hero")
	assert.NilError(t, err)
	c, _ := hero.Component(types.KindPurse)
	assert.Equal(t, c.(types.Purse).Silver, 50)
}

// fixedIDs always allocates the same id, forcing a duplicate append.
type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

func TestFailedAppendSkipsStateApplication(t *testing.T) {
	engine := newEngineForTest(t, chronicle.WithIDSource(fixedIDs{id: "entry-1"}))
	ctx := context.Background()

	events := campaignEvents()
	_, err := engine.Submit(ctx, events[0])
	assert.NilError(t, err)

	// Same entry id again: the append fails, so the goblin never appears in
	// the read model even though its creation event passed the pipeline.
	entry, err := engine.Submit(ctx, events[1])
	assert.IsError(t, err)
	assert.Equal(t, entry.ID, eventlog.EntryID("entry-1"))

	_, err = engine.Entity("goblin")
	assert.ErrorIs(t, err, gamestate.ErrEntityNotFound)

	snapshot, err := engine.Snapshot(ctx)
	assert.NilError(t, err)
	assert.Equal(t, snapshot.TotalEvents, uint64(1))
	assert.Equal(t, snapshot.ProcessedEvents, uint64(1))
}

func TestSubmittingToAMissingEntityFails(t *testing.T) {
	engine := newEngineForTest(t)

	// No auto-vivification: attacking works permissively, but transfers
	// demand both parties exist.
	_, err := engine.Submit(context.Background(),
		types.CurrencyTransferred{FromID: "nobody", ToID: "nobody", Silver: 1})
	assert.ErrorIs(t, err, gamestate.ErrEntityNotFound)
}

func TestRegisteredSystemsAreOrdered(t *testing.T) {
	engine := newEngineForTest(t)
	names := engine.RegisteredSystems()
	assert.Len(t, names, 11)
	assert.Equal(t, names[0], "character_creation")
}

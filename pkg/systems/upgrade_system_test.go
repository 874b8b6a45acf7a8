package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

type upgradeFixture struct {
	em      *ecs.EntityManager
	bus     *event.Bus
	stats   *StatSystem
	weapons *WeaponSystem
	items   *ItemSystem
	upgrade *UpgradeSystem
	player  ecs.EntityID
}

func newUpgradeFixture(t *testing.T) *upgradeFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	weaponSpecs := testWeapons(t)
	registry := testItems(t)

	exp := config.ExperienceConfig{OfferCount: 3}
	exp.Growth.Set(types.StatAttack, 1)
	exp.Growth.Set(types.StatMaxHealth, 5)

	f := &upgradeFixture{em: em, bus: bus}
	f.stats = NewStatSystem(em, bus)
	f.weapons = NewWeaponSystem(em, bus, weaponSpecs)
	f.items = NewItemSystem(em, bus, registry)
	f.upgrade = NewUpgradeSystem(em, bus, f.weapons, weaponSpecs, f.items, registry, testRand(), exp)
	f.player = newTestPlayer(t, em, 0, 0)
	return f
}

func TestLevelUpGrantsGrowthAndOffer(t *testing.T) {
	f := newUpgradeFixture(t)

	f.bus.Publish(event.LevelUp{Player: f.player, Level: 2})
	f.bus.Process()

	snap, _ := f.stats.Snapshot(f.player)
	assert.Equal(t, 1.0, snap.Get(types.StatAttack))
	assert.Equal(t, 105.0, snap.Get(types.StatMaxHealth))

	assert.Equal(t, 1, f.upgrade.Pending())
	offers, ok := f.upgrade.Current()
	require.True(t, ok)
	assert.Len(t, offers, 3)

	seen := make(map[string]bool)
	for _, o := range offers {
		assert.False(t, seen[o.ID], "offers are distinct")
		seen[o.ID] = true
		assert.True(t, o.IsNew())
	}
}

func TestChooseUpgradeAppliesOffer(t *testing.T) {
	f := newUpgradeFixture(t)

	f.bus.Publish(event.LevelUp{Player: f.player, Level: 2})
	f.bus.Publish(event.LevelUp{Player: f.player, Level: 3})
	f.bus.Process()
	require.Equal(t, 2, f.upgrade.Pending())

	for f.upgrade.Pending() > 0 {
		offers, ok := f.upgrade.Current()
		require.True(t, ok)
		chosen, err := f.upgrade.Choose(0)
		require.NoError(t, err)
		assert.Equal(t, offers[0], chosen)
		f.bus.Process()

		switch chosen.Kind {
		case OfferWeapon:
			_, owned := f.weapons.Find(f.player, chosen.ID)
			assert.True(t, owned)
		case OfferItem:
			assert.Equal(t, chosen.Level, f.items.Level(f.player, chosen.ID))
		}
	}

	_, err := f.upgrade.Choose(0)
	assert.ErrorIs(t, err, ErrNoPendingOffer)
}

func TestChooseUpgradeOutOfRange(t *testing.T) {
	f := newUpgradeFixture(t)
	f.bus.Publish(event.LevelUp{Player: f.player, Level: 2})
	f.bus.Process()

	_, err := f.upgrade.Choose(7)
	assert.Error(t, err)
	assert.Equal(t, 1, f.upgrade.Pending(), "invalid choice keeps the offer")
}

func TestOffersSkipMaxedEntries(t *testing.T) {
	f := newUpgradeFixture(t)

	// 把所有武器和装备都升满
	for i := 0; i < 3; i++ {
		f.bus.Publish(event.WeaponPickup{Owner: f.player, Kind: "bolt"})
		f.bus.Publish(event.WeaponPickup{Owner: f.player, Kind: "aura"})
		f.items.Equip(f.player, "whetstone")
		f.items.Equip(f.player, "armor_plate")
		f.bus.Process()
	}
	w, _ := f.weapons.Find(f.player, "bolt")
	comp, _ := ecs.GetComponent[*components.WeaponComponent](f.em, w)
	require.Equal(t, 3, comp.Level)

	f.bus.Publish(event.LevelUp{Player: f.player, Level: 2})
	f.bus.Process()

	assert.Equal(t, 0, f.upgrade.Pending(), "nothing to offer, the reward is skipped")
	_, ok := f.upgrade.Current()
	assert.False(t, ok)
}

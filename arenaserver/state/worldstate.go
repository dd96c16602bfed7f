package state

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	uuid "github.com/satori/go.uuid"

	"github.com/yosytuvy/agario/common/config"
)

// WorldState is the authoritative store for every live entity. All access
// goes through its methods; a single coarse mutex makes each operation one
// uninterrupted step, which is what the consumption arbitration relies on
// for double-spend prevention.
type WorldState struct {
	cfg config.GameConfig

	pellets     map[int]*Pellet
	viruses     map[int]*Virus
	projectiles map[int]*VirusProjectile
	players     map[string]*Player
	splits      map[string]*PlayerSplit
	ejected     map[int]*PlayerEjected

	// spatial index over live viruses, backing the placement separation query
	virusindex    *rtreego.Rtree
	virusspatials map[int]*virusSpatial

	nextPelletId     int
	nextVirusId      int
	nextProjectileId int
	nextEjectedId    int

	worldmutex *sync.Mutex
}

type virusSpatial struct {
	id   int
	rect *rtreego.Rect
}

func (s *virusSpatial) Bounds() *rtreego.Rect {
	return s.rect
}

func NewWorldState(cfg config.GameConfig) *WorldState {

	world := &WorldState{
		cfg: cfg,

		pellets:     make(map[int]*Pellet),
		viruses:     make(map[int]*Virus),
		projectiles: make(map[int]*VirusProjectile),
		players:     make(map[string]*Player),
		splits:      make(map[string]*PlayerSplit),
		ejected:     make(map[int]*PlayerEjected),

		virusindex:    rtreego.NewTree(2, 25, 50),
		virusspatials: make(map[int]*virusSpatial),

		worldmutex: &sync.Mutex{},
	}

	for i := 0; i < cfg.PelletCount; i++ {
		world.spawnPellet()
	}

	for i := 0; i < cfg.VirusCount; i++ {
		world.spawnVirus()
	}

	return world
}

func (world *WorldState) Config() config.GameConfig {
	return world.cfg
}

/* ***************************************************************************/
/* Players */
/* ***************************************************************************/

func (world *WorldState) CreatePlayer() Player {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	player := &Player{
		Id:     uuid.NewV4().String(),
		X:      100 + rand.Float64()*(world.cfg.WorldSize-200),
		Y:      100 + rand.Float64()*(world.cfg.WorldSize-200),
		Mass:   world.cfg.StartMass,
		Radius: world.cfg.Radius(world.cfg.StartMass),
		Color:  randomHslColor(),
	}

	world.players[player.Id] = player

	return *player
}

// RemovePlayer removes the player and cascades to its splits and ejected
// mass in the same critical section; a reader can never observe a split
// whose owner is gone.
func (world *WorldState) RemovePlayer(playerId string) bool {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	return world.removePlayer(playerId)
}

// callers must hold worldmutex
func (world *WorldState) removePlayer(playerId string) bool {
	_, found := world.players[playerId]

	delete(world.players, playerId)

	for splitId, split := range world.splits {
		if split.PlayerId == playerId {
			delete(world.splits, splitId)
		}
	}

	for ejectedId, ejected := range world.ejected {
		if ejected.PlayerId == playerId {
			delete(world.ejected, ejectedId)
		}
	}

	return found
}

func (world *WorldState) UpdatePlayer(playerId string, x, y, mass, radius float64, color string) bool {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	player, found := world.players[playerId]
	if !found {
		return false
	}

	player.X = x
	player.Y = y
	player.Mass = mass
	player.Radius = radius
	if color != "" {
		player.Color = color
	}

	return true
}

func (world *WorldState) GetPlayer(playerId string) (Player, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	player, found := world.players[playerId]
	if !found {
		return Player{}, false
	}

	return *player, true
}

/* ***************************************************************************/
/* Splits and ejected mass (client-authoritative, replaced wholesale) */
/* ***************************************************************************/

type SplitUpdate struct {
	Id         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Vx         float64 `json:"vx"`
	Vy         float64 `json:"vy"`
	Mass       float64 `json:"mass"`
	Born       float64 `json:"born"`
	MergeDelay float64 `json:"mergeDelay"`
}

type EjectedUpdate struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Vx        float64 `json:"vx"`
	Vy        float64 `json:"vy"`
	Travelled float64 `json:"travelled"`
	Mass      float64 `json:"mass"`
}

func (world *WorldState) ReplaceSplits(playerId string, splits []SplitUpdate) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	if _, found := world.players[playerId]; !found {
		return
	}

	for splitId, split := range world.splits {
		if split.PlayerId == playerId {
			delete(world.splits, splitId)
		}
	}

	for _, update := range splits {
		splitId := update.Id
		if splitId == "" {
			splitId = fmt.Sprintf("split-%s-%d", playerId, len(world.splits))
		}

		world.splits[splitId] = &PlayerSplit{
			Id:         splitId,
			PlayerId:   playerId,
			X:          update.X,
			Y:          update.Y,
			Vx:         update.Vx,
			Vy:         update.Vy,
			Mass:       update.Mass,
			Born:       update.Born,
			MergeDelay: update.MergeDelay,
		}
	}
}

func (world *WorldState) ReplaceEjected(playerId string, ejected []EjectedUpdate) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	if _, found := world.players[playerId]; !found {
		return
	}

	for ejectedId, ej := range world.ejected {
		if ej.PlayerId == playerId {
			delete(world.ejected, ejectedId)
		}
	}

	for _, update := range ejected {
		ejectedId := world.nextEjectedId
		world.nextEjectedId++

		world.ejected[ejectedId] = &PlayerEjected{
			Id:        ejectedId,
			PlayerId:  playerId,
			X:         update.X,
			Y:         update.Y,
			Vx:        update.Vx,
			Vy:        update.Vy,
			Travelled: update.Travelled,
			Mass:      update.Mass,
		}
	}
}

/* ***************************************************************************/
/* Pellet and virus consumption (1:1 respawn keeps populations constant) */
/* ***************************************************************************/

type PelletUpdate struct {
	Consumed int    `json:"consumed"`
	Spawned  Pellet `json:"spawned"`
}

type VirusUpdate struct {
	Consumed int   `json:"consumed"`
	Spawned  Virus `json:"spawned"`
}

func (world *WorldState) ConsumePellet(pelletId int) (PelletUpdate, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	if _, found := world.pellets[pelletId]; !found {
		return PelletUpdate{}, false
	}

	delete(world.pellets, pelletId)
	spawned := world.spawnPellet()

	return PelletUpdate{Consumed: pelletId, Spawned: *spawned}, true
}

func (world *WorldState) ConsumeVirus(virusId int) (VirusUpdate, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	if _, found := world.viruses[virusId]; !found {
		return VirusUpdate{}, false
	}

	world.deleteVirus(virusId)
	spawned := world.spawnVirus()

	return VirusUpdate{Consumed: virusId, Spawned: *spawned}, true
}

// callers must hold worldmutex
func (world *WorldState) deleteVirus(virusId int) {
	delete(world.viruses, virusId)

	if spatial, indexed := world.virusspatials[virusId]; indexed {
		world.virusindex.Delete(spatial)
		delete(world.virusspatials, virusId)
	}
}

/* ***************************************************************************/
/* Snapshots for serialization */
/* ***************************************************************************/

func (world *WorldState) Pellets() []Pellet {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]Pellet, 0, len(world.pellets))
	for _, pellet := range world.pellets {
		res = append(res, *pellet)
	}

	return res
}

func (world *WorldState) Viruses() []Virus {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]Virus, 0, len(world.viruses))
	for _, virus := range world.viruses {
		res = append(res, *virus)
	}

	return res
}

func (world *WorldState) Projectiles() []VirusProjectile {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]VirusProjectile, 0, len(world.projectiles))
	for _, projectile := range world.projectiles {
		res = append(res, *projectile)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })

	return res
}

func (world *WorldState) Players() []Player {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]Player, 0, len(world.players))
	for _, player := range world.players {
		res = append(res, *player)
	}

	return res
}

func (world *WorldState) PlayerSplits() []PlayerSplit {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]PlayerSplit, 0, len(world.splits))
	for _, split := range world.splits {
		res = append(res, *split)
	}

	return res
}

func (world *WorldState) PlayerEjected() []PlayerEjected {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	res := make([]PlayerEjected, 0, len(world.ejected))
	for _, ejected := range world.ejected {
		res = append(res, *ejected)
	}

	return res
}

type WorldCounts struct {
	Players     int `json:"totalPlayers"`
	Pellets     int `json:"totalPellets"`
	Viruses     int `json:"totalViruses"`
	Projectiles int `json:"totalProjectiles"`
	Splits      int `json:"totalSplits"`
	Ejected     int `json:"totalEjected"`
}

func (world *WorldState) Counts() WorldCounts {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	return WorldCounts{
		Players:     len(world.players),
		Pellets:     len(world.pellets),
		Viruses:     len(world.viruses),
		Projectiles: len(world.projectiles),
		Splits:      len(world.splits),
		Ejected:     len(world.ejected),
	}
}

func randomHslColor() string {
	return fmt.Sprintf("hsl(%d,70%%,60%%)", rand.Intn(361))
}

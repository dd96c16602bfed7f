package state

import (
	"math"
	"math/rand"

	"github.com/dhconnelly/rtreego"

	"github.com/yosytuvy/agario/common/utils"
)

const virusPlacementAttempts = 50

func (world *WorldState) SpawnPellet() Pellet {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	return *world.spawnPellet()
}

func (world *WorldState) SpawnVirus() Virus {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	return *world.spawnVirus()
}

// callers must hold worldmutex
func (world *WorldState) spawnPellet() *Pellet {
	pelletId := world.nextPelletId
	world.nextPelletId++

	r := world.cfg.PelletRadius

	pellet := &Pellet{
		Id:    pelletId,
		X:     r + rand.Float64()*(world.cfg.WorldSize-2*r),
		Y:     r + rand.Float64()*(world.cfg.WorldSize-2*r),
		Mass:  1 + rand.Intn(5),
		Color: randomHslColor(),
	}

	world.pellets[pelletId] = pellet

	return pellet
}

// spawnVirus places a virus by rejection sampling: up to 50 uniform draws,
// accepting the first whose distance to every live virus is >= 3r. When all
// attempts fail the last draw is kept, overlap and all; liveness over
// placement quality.
//
// callers must hold worldmutex
func (world *WorldState) spawnVirus() *Virus {
	r := world.cfg.Radius(world.cfg.VirusMass)

	var x, y float64
	for attempt := 0; attempt < virusPlacementAttempts; attempt++ {
		x = r + rand.Float64()*(world.cfg.WorldSize-2*r)
		y = r + rand.Float64()*(world.cfg.WorldSize-2*r)

		if world.virusSeparationOk(x, y, r) {
			break
		}
	}

	virusId := world.nextVirusId
	world.nextVirusId++

	virus := &Virus{
		Id:   virusId,
		X:    x,
		Y:    y,
		Mass: world.cfg.VirusMass,
	}

	world.viruses[virusId] = virus
	world.indexVirus(virus, r)

	return virus
}

// callers must hold worldmutex
func (world *WorldState) virusSeparationOk(x, y, r float64) bool {
	// Coarse pass on the spatial index: any virus whose center is closer
	// than 3r has its bounding box inside the 4r query region.
	span := 4 * r
	region, err := rtreego.NewRect([]float64{x - span, y - span}, []float64{2 * span, 2 * span})
	utils.Check(err, "rtreego Error")

	for _, match := range world.virusindex.SearchIntersect(region) {
		spatial := match.(*virusSpatial)

		other, alive := world.viruses[spatial.id]
		if !alive {
			continue
		}

		if math.Hypot(other.X-x, other.Y-y) < 3*r {
			return false
		}
	}

	return true
}

// callers must hold worldmutex
func (world *WorldState) indexVirus(virus *Virus, r float64) {
	rect, err := rtreego.NewRect([]float64{virus.X - r, virus.Y - r}, []float64{2 * r, 2 * r})
	utils.Check(err, "rtreego Error")

	spatial := &virusSpatial{id: virus.Id, rect: rect}
	world.virusspatials[virus.Id] = spatial
	world.virusindex.Insert(spatial)
}

// moveVirus relocates a virus and keeps the spatial index in sync.
//
// callers must hold worldmutex
func (world *WorldState) moveVirus(virus *Virus, x, y float64) {
	if spatial, indexed := world.virusspatials[virus.Id]; indexed {
		world.virusindex.Delete(spatial)
		delete(world.virusspatials, virus.Id)
	}

	virus.X = x
	virus.Y = y

	world.indexVirus(virus, world.cfg.Radius(world.cfg.VirusMass))
}

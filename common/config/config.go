package config

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"math"
	"path"
	"path/filepath"

	"github.com/kardianos/osext"
)

// GameConfig carries every gameplay constant. It is read once at startup and
// never mutated afterwards; the same struct is serialized verbatim into the
// init message and the /api/game/config endpoint, so the json tags are part
// of the wire contract with the client.
type GameConfig struct {
	WorldSize float64 `json:"worldSize"`
	GridSize  float64 `json:"gridSize"`

	PelletCount  int     `json:"pelletCount"`
	PelletRadius float64 `json:"pelletRadius"`

	VirusCount            int     `json:"virusCount"`
	VirusMass             float64 `json:"virusMass"`
	VirusColor            string  `json:"virusColor"`
	VirusSpikeCount       int     `json:"virusSpikeCount"`
	VirusExplodeThreshold float64 `json:"virusExplodeThreshold"`
	VirusExplodeSpeed     float64 `json:"virusExplodeSpeed"`
	VirusFeedMass         float64 `json:"virusFeedMass"`
	VirusFeedsToSplit     int     `json:"virusFeedsToSplit"`
	VirusProjectileSpeed  float64 `json:"virusProjectileSpeed"`
	VirusProjectileRange  float64 `json:"virusProjectileRange"`

	EjectThreshold float64 `json:"ejectThreshold"`
	EjectLoss      float64 `json:"ejectLoss"`
	EjectMassGain  float64 `json:"ejectMassGain"`
	EjectRange     float64 `json:"ejectRange"`
	EjectSpeed     float64 `json:"ejectSpeed"`

	SplitThreshold      float64 `json:"splitThreshold"`
	SplitSpeed          float64 `json:"splitSpeed"`
	SplitFlightDuration float64 `json:"splitFlightDuration"`
	MergeSpeed          float64 `json:"mergeSpeed"`

	StartMass float64 `json:"startMass"`
	DecayRate float64 `json:"decayRate"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		WorldSize: 11000,
		GridSize:  50,

		PelletCount:  1500,
		PelletRadius: 5,

		VirusCount:            30,
		VirusMass:             100,
		VirusColor:            "#00ff00",
		VirusSpikeCount:       24,
		VirusExplodeThreshold: 133,
		VirusExplodeSpeed:     250,
		VirusFeedMass:         15,
		VirusFeedsToSplit:     7,
		VirusProjectileSpeed:  350,
		VirusProjectileRange:  350,

		EjectThreshold: 35,
		EjectLoss:      18,
		EjectMassGain:  13, // floor(EjectLoss * 0.72)
		EjectRange:     320,
		EjectSpeed:     350,

		SplitThreshold:      32,
		SplitSpeed:          400,
		SplitFlightDuration: 1000, // ms
		MergeSpeed:          100,

		StartMass: 25,
		DecayRate: 0.002,
	}
}

// Radius of any massed entity. System-wide invariant shared by every entity
// kind carrying a mass field.
func (c GameConfig) Radius(mass float64) float64 {
	return c.PelletRadius * math.Sqrt(mass)
}

// LoadGameConfig overlays the JSON file at filename on the defaults.
func LoadGameConfig(filename string) GameConfig {
	data, err := ioutil.ReadFile(GetAbsolutePath(filename))

	if err != nil {
		log.Panicln(err)
	}

	config := DefaultGameConfig()

	if err := json.Unmarshal(data, &config); err != nil {
		log.Panicln(err)
	}

	assertPositive(config.WorldSize, "worldSize must be > 0")
	assertPositive(float64(config.PelletCount), "pelletCount must be > 0")
	assertPositive(config.PelletRadius, "pelletRadius must be > 0")
	assertPositive(float64(config.VirusCount), "virusCount must be > 0")
	assertPositive(config.VirusMass, "virusMass must be > 0")
	assertPositive(float64(config.VirusFeedsToSplit), "virusFeedsToSplit must be > 0")

	return config
}

func assertPositive(value float64, err string) {
	if value <= 0 {
		log.Panic(err)
	}
}

// GetAbsolutePath resolves a path relative to the executable folder;
// absolute paths are returned untouched.
func GetAbsolutePath(relative string) string {

	if filepath.IsAbs(relative) {
		return relative
	}

	exfolder, err := osext.ExecutableFolder()
	if err != nil {
		log.Fatal(err)
	}

	return path.Join(exfolder, relative)
}

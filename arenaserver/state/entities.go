package state

// Entity structs are serialized verbatim on the wire; the json tags are part
// of the client contract.

type Pellet struct {
	Id    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Mass  int     `json:"mass"`
	Color string  `json:"color"`
}

type Virus struct {
	Id            int      `json:"id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Mass          float64  `json:"mass"`
	FeedCount     int      `json:"feedCount"`
	LastFeedAngle *float64 `json:"lastFeedAngle"`
}

// A VirusProjectile is the in-flight form of a virus mass unit; it converts
// back into a Virus at end of flight and the two never coexist.
type VirusProjectile struct {
	Id        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Vx        float64 `json:"vx"`
	Vy        float64 `json:"vy"`
	Travelled float64 `json:"travelled"`
	Mass      float64 `json:"mass"`
}

type Player struct {
	Id     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// PlayerSplit mass/position are client-reported; the server stores the last
// report and never simulates splits itself.
type PlayerSplit struct {
	Id         string  `json:"id"`
	PlayerId   string  `json:"playerId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Vx         float64 `json:"vx"`
	Vy         float64 `json:"vy"`
	Mass       float64 `json:"mass"`
	Born       float64 `json:"born"`
	MergeDelay float64 `json:"mergeDelay"`
}

type PlayerEjected struct {
	Id        int     `json:"id"`
	PlayerId  string  `json:"playerId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Vx        float64 `json:"vx"`
	Vy        float64 `json:"vy"`
	Travelled float64 `json:"travelled"`
	Mass      float64 `json:"mass"`
}

package fx

// Burst defaults.
const (
	BurstCount     = 45
	BurstSpeedMin  = 2.0
	BurstSpeedMax  = 4.0
	BurstRadiusMin = 2.0
	BurstRadiusMax = 3.5
	BurstDecayMin  = 0.015
	BurstDecayMax  = 0.035
	BurstHueMin    = 200.0
	BurstHueMax    = 280.0
)

// Per-tick simulation and paint defaults.
const (
	Gravity            = 0.03 // added to vy every tick
	TrailAlpha         = 0.2  // fade rectangle alpha under destination-out
	ParticleSaturation = 0.8
	ParticleLightness  = 0.6
)

// Collection ceiling: 100 full bursts alive at once. 0 disables the cap.
const MaxParticles = 100 * BurstCount

// Overlay stacking order for the surface, above any page content.
const TopLayer = 9999

// expiryEpsilon absorbs float drift from repeated decay subtraction so
// that 1 - n*decay reaching 0 on paper is treated as expired.
const expiryEpsilon = 1e-9

// clickQueueSize bounds spawn requests buffered between two frames.
const clickQueueSize = 256

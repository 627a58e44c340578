package audio

// Cue identifies a match sound
type Cue int

const (
	CueWave    Cue = iota // New wave started
	CueKill               // Actor killed
	CueReached            // Attacker got through
	CueVictory            // Match won
	CueDefeat             // Match lost
	cueCount
)

var cueNames = [cueCount]string{"wave", "kill", "reached", "victory", "defeat"}

// String returns the cue name used in configuration
func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

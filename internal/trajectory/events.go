package trajectory

// Event is a step whose impulse exceeded the caller threshold. The generator
// state is carried so downstream consumers can map the event to a biological
// coordinate deterministically.
type Event struct {
	Step      int     `json:"step"`
	Time      float64 `json:"time"`
	Impulse   float64 `json:"impulse"`
	PRNGState uint64  `json:"prng_state"`
}

// Detect returns every sample with impulse strictly above threshold, in step
// order. No deduplication or hysteresis: consecutive qualifying steps are
// separate events.
func Detect(samples []Sample, threshold float64) []Event {
	var events []Event
	for _, s := range samples {
		if s.Impulse > threshold {
			events = append(events, Event{
				Step:      s.Step,
				Time:      s.Time,
				Impulse:   s.Impulse,
				PRNGState: s.PRNGState,
			})
		}
	}
	return events
}

// DefaultProteinLength is the p53 residue count used when no target protein
// is configured.
const DefaultProteinLength = 393

// MapStateToResidue maps a generator state to a residue index in
// [1, proteinLength]. offset shifts the mapping reproducibly.
func MapStateToResidue(state uint64, proteinLength int, offset int64) int {
	if proteinLength <= 0 {
		proteinLength = DefaultProteinLength
	}
	n := int64(proteinLength)
	shifted := (int64(state%uint64(proteinLength)) + offset%n) % n
	if shifted < 0 {
		shifted += n
	}
	return int(shifted) + 1
}

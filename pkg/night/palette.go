package night

import "math/rand/v2"

// AssignPalette maps each candidate to a liquid material for the given night.
// The correct candidate gets the palette's correct material; the others draw
// from a shuffled bag of incorrect materials, cycling when the bag runs out.
// It returns nil when there is nothing to assign.
func AssignPalette(palettes []Palette, night int, candidates []CandidateID, correct CandidateID, r *rand.Rand) map[CandidateID]string {
	if len(palettes) == 0 || len(candidates) == 0 {
		return nil
	}
	pal := palettes[clamp(night-1, 0, len(palettes)-1)]
	if len(pal.Incorrect) == 0 {
		return nil
	}

	bag := append([]string(nil), pal.Incorrect...)
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })

	out := make(map[CandidateID]string, len(candidates))
	wrong := 0
	for _, id := range candidates {
		if id == correct {
			if pal.Correct != "" {
				out[id] = pal.Correct
			}
			continue
		}
		out[id] = bag[wrong%len(bag)]
		wrong++
	}
	return out
}

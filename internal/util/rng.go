package util

import "math/rand"

// episodeStride spaces per-episode seeds so consecutive episodes of one run
// never share a stream with a neighbouring run seed.
const episodeStride = 7919

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// EpisodeSeed derives the seed for the n-th episode of a run.
func EpisodeSeed(seed int64, episode int) int64 {
	return seed + int64(episode)*episodeStride
}

// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

// movieDetails is the subset of GET /movie/{id} this client reads.
type movieDetails struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// videoList is the subset of GET /movie/{id}/videos this client reads.
type videoList struct {
	ID      int     `json:"id"`
	Results []video `json:"results"`
}

type video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Values TMDB uses for YouTube trailers.
const (
	siteYouTube  = "YouTube"
	typeTrailer  = "Trailer"
	youTubeWatch = "https://www.youtube.com/watch?v="
)

// firstTrailer returns the key of the first YouTube trailer in list order.
// Entries without a key are skipped.
func (v *videoList) firstTrailer() (string, bool) {
	for _, vid := range v.Results {
		if vid.Site == siteYouTube && vid.Type == typeTrailer && vid.Key != "" {
			return vid.Key, true
		}
	}
	return "", false
}

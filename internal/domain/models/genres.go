package models

import "strings"

// genreIDByName maps lowercase TMDB genre names to their catalog IDs.
var genreIDByName = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"tv movie":        10770,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

var genreNameByID = func() map[int]string {
	m := make(map[int]string, len(genreIDByName))
	for name, id := range genreIDByName {
		m[id] = name
	}
	return m
}()

// GenreList is the canonical genre vocabulary offered to the genre suggester.
const GenreList = "Action, Adventure, Animation, Comedy, Crime, Documentary, Drama, Family, Fantasy, History, Horror, Music, Mystery, Romance, Science Fiction, TV Movie, Thriller, War, Western"

// GenreIDsByName resolves genre names (case-insensitive) to TMDB IDs,
// silently skipping names outside the vocabulary.
func GenreIDsByName(names []string) []int {
	var ids []int
	for _, name := range names {
		if id, ok := genreIDByName[strings.ToLower(strings.TrimSpace(name))]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// GenreNamesByID resolves TMDB genre IDs to title-cased names, skipping
// unknown IDs.
func GenreNamesByID(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNameByID[id]; ok {
			names = append(names, titleCase(name))
		}
	}
	return names
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "tv" {
			words[i] = "TV"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

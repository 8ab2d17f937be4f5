package repository

import (
	"strings"

	"starwars-api/internal/domains/character"
)

// orderClause maps a SortOrder to SQL. Newest first is the only ordering;
// id breaks ties between rows written in the same transaction.
func orderClause(_ character.SortOrder) string {
	return "created_at DESC, id DESC"
}

func episodesToStrings(episodes []character.Episode) []string {
	out := make([]string, len(episodes))
	for i, e := range episodes {
		out[i] = string(e)
	}
	return out
}

func stringsToEpisodes(values []string) []character.Episode {
	out := make([]character.Episode, len(values))
	for i, v := range values {
		out[i] = character.Episode(v)
	}
	return out
}

// joinEpisodes encodes episodes as a comma separated list.
// Episode values never contain commas.
func joinEpisodes(episodes []character.Episode) string {
	return strings.Join(episodesToStrings(episodes), ",")
}

func splitEpisodes(value string) []character.Episode {
	if value == "" {
		return []character.Episode{}
	}
	return stringsToEpisodes(strings.Split(value, ","))
}

package character

// Episode is one installment of the saga.
type Episode string

const (
	EpisodeNewHope       Episode = "NEWHOPE"
	EpisodeEmpire        Episode = "EMPIRE"
	EpisodeJedi          Episode = "JEDI"
	EpisodePhantom       Episode = "PHANTOM"
	EpisodeClones        Episode = "CLONES"
	EpisodeSith          Episode = "SITH"
	EpisodeAwakens       Episode = "AWAKENS"
	EpisodeLastJedi      Episode = "LAST_JEDI"
	EpisodeRiseSkywalker Episode = "RISE_SKYWALKER"
)

var allEpisodes = []Episode{
	EpisodeNewHope,
	EpisodeEmpire,
	EpisodeJedi,
	EpisodePhantom,
	EpisodeClones,
	EpisodeSith,
	EpisodeAwakens,
	EpisodeLastJedi,
	EpisodeRiseSkywalker,
}

// AllEpisodes returns the fixed enumeration in release order.
func AllEpisodes() []Episode {
	out := make([]Episode, len(allEpisodes))
	copy(out, allEpisodes)
	return out
}

// IsValid checks membership in the fixed enumeration
func (e Episode) IsValid() bool {
	for _, known := range allEpisodes {
		if e == known {
			return true
		}
	}
	return false
}

func (e Episode) String() string {
	return string(e)
}

package character

// SeedRoster returns the canonical characters inserted by Seed.
// A fresh slice is built on every call so callers may keep what they get.
func SeedRoster() []Fields {
	trilogy := func() []Episode {
		return []Episode{EpisodeNewHope, EpisodeEmpire, EpisodeJedi}
	}

	return []Fields{
		{Name: "Luke Skywalker", Episodes: trilogy(), Planet: strPtr("Tatooine"), Species: strPtr("Human"), Affiliation: strPtr("Rebel Alliance")},
		{Name: "Darth Vader", Episodes: trilogy(), Planet: strPtr("Tatooine"), Species: strPtr("Human"), Affiliation: strPtr("Galactic Empire")},
		{Name: "Han Solo", Episodes: trilogy(), Planet: strPtr("Corellia"), Species: strPtr("Human"), Affiliation: strPtr("Rebel Alliance")},
		{Name: "Leia Organa", Episodes: trilogy(), Planet: strPtr("Alderaan"), Species: strPtr("Human"), Affiliation: strPtr("Rebel Alliance")},
		{Name: "Wilhuff Tarkin", Episodes: []Episode{EpisodeNewHope}, Planet: strPtr("Eriadu"), Species: strPtr("Human"), Affiliation: strPtr("Galactic Empire")},
		{Name: "C-3PO", Episodes: trilogy(), Planet: strPtr("Tatooine"), Species: strPtr("Droid"), Affiliation: strPtr("Rebel Alliance")},
		{Name: "R2-D2", Episodes: trilogy(), Planet: strPtr("Naboo"), Species: strPtr("Droid"), Affiliation: strPtr("Rebel Alliance")},
	}
}

func strPtr(s string) *string {
	return &s
}

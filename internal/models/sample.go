package models

// SampleMarkets returns the embedded demonstration set shown when the
// listing fetch fails. The data is fixed so the UI stays populated and
// every feature (search, categories, volume tiers) has something to bite on.
func SampleMarkets() []Market {
	return []Market{
		{
			ID:          "sample-1",
			Title:       "Will Bitcoin reach $100,000 in 2025?",
			Description: "This market will resolve to 'Yes' if Bitcoin reaches $100,000 or higher at any point in 2025.",
			Category:    "Cryptocurrency",
			Volume:      2500000,
			Outcomes:    []Outcome{{Name: "Yes"}, {Name: "No"}},
			CreatedTime: "2024-12-01T00:00:00Z",
		},
		{
			ID:          "sample-2",
			Title:       "Will the US have a recession in 2025?",
			Description: "This market will resolve to 'Yes' if the NBER declares a recession in 2025.",
			Category:    "Economics",
			Volume:      1500000,
			Outcomes:    []Outcome{{Name: "Yes"}, {Name: "No"}},
			CreatedTime: "2024-11-15T00:00:00Z",
		},
		{
			ID:          "sample-3",
			Title:       "Will Tesla deliver 2M vehicles in 2025?",
			Description: "This market will resolve to 'Yes' if Tesla delivers 2 million or more vehicles in 2025.",
			Category:    "Business",
			Volume:      800000,
			Outcomes:    []Outcome{{Name: "Yes"}, {Name: "No"}},
			CreatedTime: "2024-12-10T00:00:00Z",
		},
		{
			ID:          "sample-4",
			Title:       "Will Apple release a foldable iPhone in 2025?",
			Description: "This market will resolve to 'Yes' if Apple officially announces and releases a foldable iPhone in 2025.",
			Category:    "Technology",
			Volume:      600000,
			Outcomes:    []Outcome{{Name: "Yes"}, {Name: "No"}},
			CreatedTime: "2024-11-20T00:00:00Z",
		},
		{
			ID:          "sample-5",
			Title:       "Will SpaceX successfully land on Mars in 2025?",
			Description: "This market will resolve to 'Yes' if SpaceX successfully lands a spacecraft on Mars in 2025.",
			Category:    "Space",
			Volume:      400000,
			Outcomes:    []Outcome{{Name: "Yes"}, {Name: "No"}},
			CreatedTime: "2024-10-01T00:00:00Z",
		},
	}
}

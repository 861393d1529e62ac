package service

import (
	"context"
	"fmt"
)

// SeedCountry is a country with its states and their cities.
type SeedCountry struct {
	Name   string
	Code   string
	States []SeedState
}

// SeedState is a state with its city names.
type SeedState struct {
	Name   string
	Cities []string
}

// SeedReport counts the rows present after seeding.
type SeedReport struct {
	Countries int
	States    int
	Cities    int
}

// DefaultSeed is the reference geography loaded by the seeder.
var DefaultSeed = []SeedCountry{
	{
		Name: "United States",
		Code: "USA",
		States: []SeedState{
			{Name: "California", Cities: []string{"Los Angeles", "San Francisco", "San Diego"}},
			{Name: "Texas", Cities: []string{"Houston", "Dallas", "Austin"}},
		},
	},
	{
		Name: "Dominican Republic",
		Code: "DOM",
		States: []SeedState{
			{Name: "Distrito Nacional", Cities: []string{"Santo Domingo"}},
			{Name: "Santiago", Cities: []string{"Santiago de los Caballeros"}},
		},
	},
}

func (s *geoService) Seed(ctx context.Context, data []SeedCountry) (*SeedReport, error) {
	report := &SeedReport{}
	for _, sc := range data {
		country, err := s.repo.EnsureCountry(ctx, sc.Name, sc.Code)
		if err != nil {
			return report, fmt.Errorf("seed country %s: %w", sc.Code, err)
		}
		report.Countries++

		for _, ss := range sc.States {
			state, err := s.repo.EnsureState(ctx, ss.Name, country.ID)
			if err != nil {
				return report, fmt.Errorf("seed state %s/%s: %w", sc.Code, ss.Name, err)
			}
			report.States++

			for _, name := range ss.Cities {
				if _, err := s.repo.EnsureCity(ctx, name, state.ID); err != nil {
					return report, fmt.Errorf("seed city %s/%s/%s: %w", sc.Code, ss.Name, name, err)
				}
				report.Cities++
			}
		}
	}
	return report, nil
}

package entity

import "strings"

// City identifies a location the screen can query. Values come from the configured picker list.
type City string

func (c City) String() string {
	return string(c)
}

// CitySet is the fixed, ordered list of cities offered by the picker.
type CitySet []City

// NewCitySet trims names and drops blanks and duplicates, keeping the first occurrence order.
func NewCitySet(names ...string) CitySet {
	seen := make(map[City]struct{}, len(names))
	set := make(CitySet, 0, len(names))
	for _, name := range names {
		city := City(strings.TrimSpace(name))
		if city == "" {
			continue
		}
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		set = append(set, city)
	}
	return set
}

// Contains reports whether city is one of the offered cities.
func (s CitySet) Contains(city City) bool {
	for _, c := range s {
		if c == city {
			return true
		}
	}
	return false
}

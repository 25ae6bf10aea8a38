// Package ports provides the built-in catalogue of harbours the dashboard
// can centre on and use as a fallback weather coordinate.
package ports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// DefaultPortKey is used when no port is configured
const DefaultPortKey = "mumbai"

var builtin = []models.Port{
	{Key: "mumbai", Code: "INMUN", Name: "Mumbai Port", Country: "IN", Latitude: 19.0760, Longitude: 72.8777},
	{Key: "chennai", Code: "INMAA", Name: "Chennai Port", Country: "IN", Latitude: 13.0827, Longitude: 80.2707},
	{Key: "visakhapatnam", Code: "INVTZ", Name: "Visakhapatnam Port", Country: "IN", Latitude: 17.6868, Longitude: 83.2185},
	{Key: "kolkata", Code: "INCCU", Name: "Kolkata Port", Country: "IN", Latitude: 22.5726, Longitude: 88.3639},
	{Key: "singapore", Code: "SGSIN", Name: "Singapore Port", Country: "SG", Latitude: 1.2966, Longitude: 103.8006},
	{Key: "dubai", Code: "AEJEA", Name: "Dubai Port", Country: "AE", Latitude: 25.2769, Longitude: 55.3073},
	{Key: "hambantota", Code: "LKHBT", Name: "Hambantota Port", Country: "LK", Latitude: 6.1240, Longitude: 81.1185},
	{Key: "kochi", Code: "INCOK", Name: "Kochi Port", Country: "IN", Latitude: 9.9312, Longitude: 76.2673},
}

// Catalogue is a read-only set of known ports
type Catalogue struct {
	ports map[string]models.Port
}

// NewCatalogue creates a catalogue holding the built-in ports
func NewCatalogue() *Catalogue {
	c := &Catalogue{ports: make(map[string]models.Port, len(builtin))}
	for _, p := range builtin {
		c.ports[p.Key] = p
	}
	return c
}

// Lookup finds a port by key or UN/LOCODE, case-insensitively
func (c *Catalogue) Lookup(query string) (models.Port, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return models.Port{}, fmt.Errorf("port query cannot be empty")
	}

	if p, ok := c.ports[query]; ok {
		return p, nil
	}
	for _, p := range c.ports {
		if strings.ToLower(p.Code) == query {
			return p, nil
		}
	}

	return models.Port{}, fmt.Errorf("unknown port %q", query)
}

// All returns every port ordered by key
func (c *Catalogue) All() []models.Port {
	all := make([]models.Port, 0, len(c.ports))
	for _, p := range c.ports {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Key < all[j].Key
	})
	return all
}

// Package ports provides a built-in registry of common research cruise
// ports, referenced from configurations by identifiers like
// "port_reykjavik". User-supplied port definitions always take precedence
// over registry entries.
package ports

import (
	"strings"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
)

// Port describes a registry entry.
type Port struct {
	Name        string
	DisplayName string
	Position    geo.Point
	Timezone    string
}

var registry = map[string]Port{
	"port_reykjavik": {
		Name:        "Reykjavik",
		DisplayName: "Reykjavik, Iceland",
		Position:    geo.Point{Latitude: 64.1466, Longitude: -21.9426},
		Timezone:    "GMT+0",
	},
	"port_tromso": {
		Name:        "Tromso",
		DisplayName: "Tromso, Norway",
		Position:    geo.Point{Latitude: 69.6492, Longitude: 18.9553},
		Timezone:    "GMT+1",
	},
	"port_bergen": {
		Name:        "Bergen",
		DisplayName: "Bergen, Norway",
		Position:    geo.Point{Latitude: 60.3913, Longitude: 5.3221},
		Timezone:    "GMT+1",
	},
	"port_stavanger": {
		Name:        "Stavanger",
		DisplayName: "Stavanger, Norway",
		Position:    geo.Point{Latitude: 58.9700, Longitude: 5.7331},
		Timezone:    "GMT+1",
	},
	"port_southampton": {
		Name:        "Southampton",
		DisplayName: "Southampton, UK",
		Position:    geo.Point{Latitude: 50.9097, Longitude: -1.4044},
		Timezone:    "GMT+0",
	},
	"port_plymouth": {
		Name:        "Plymouth",
		DisplayName: "Plymouth, UK",
		Position:    geo.Point{Latitude: 50.3755, Longitude: -4.1427},
		Timezone:    "GMT+0",
	},
	"port_cork": {
		Name:        "Cork",
		DisplayName: "Cork, Ireland",
		Position:    geo.Point{Latitude: 51.8985, Longitude: -8.4756},
		Timezone:    "GMT+0",
	},
	"port_bremerhaven": {
		Name:        "Bremerhaven",
		DisplayName: "Bremerhaven, Germany",
		Position:    geo.Point{Latitude: 53.5395, Longitude: 8.5809},
		Timezone:    "GMT+1",
	},
	"port_kiel": {
		Name:        "Kiel",
		DisplayName: "Kiel, Germany",
		Position:    geo.Point{Latitude: 54.3233, Longitude: 10.1228},
		Timezone:    "GMT+1",
	},
	"port_hamburg": {
		Name:        "Hamburg",
		DisplayName: "Hamburg, Germany",
		Position:    geo.Point{Latitude: 53.5511, Longitude: 9.9937},
		Timezone:    "GMT+1",
	},
	"port_lisbon": {
		Name:        "Lisbon",
		DisplayName: "Lisbon, Portugal",
		Position:    geo.Point{Latitude: 38.7223, Longitude: -9.1393},
		Timezone:    "GMT+0",
	},
	"port_las_palmas": {
		Name:        "Las_Palmas",
		DisplayName: "Las Palmas, Canary Islands",
		Position:    geo.Point{Latitude: 28.1235, Longitude: -15.4363},
		Timezone:    "GMT+0",
	},
	"port_ponta_delgada": {
		Name:        "Ponta_Delgada",
		DisplayName: "Ponta Delgada, Azores",
		Position:    geo.Point{Latitude: 37.7394, Longitude: -25.6687},
		Timezone:    "GMT-1",
	},
	"port_mindelo": {
		Name:        "Mindelo",
		DisplayName: "Mindelo, Cape Verde",
		Position:    geo.Point{Latitude: 16.8901, Longitude: -24.9804},
		Timezone:    "GMT-1",
	},
	"port_nuuk": {
		Name:        "Nuuk",
		DisplayName: "Nuuk, Greenland",
		Position:    geo.Point{Latitude: 64.1836, Longitude: -51.7214},
		Timezone:    "GMT-3",
	},
	"port_st_johns": {
		Name:        "St_Johns",
		DisplayName: "St. John's, Newfoundland",
		Position:    geo.Point{Latitude: 47.5615, Longitude: -52.7126},
		Timezone:    "GMT-3.5",
	},
	"port_halifax": {
		Name:        "Halifax",
		DisplayName: "Halifax, Nova Scotia",
		Position:    geo.Point{Latitude: 44.6488, Longitude: -63.5752},
		Timezone:    "GMT-4",
	},
	"port_woods_hole": {
		Name:        "Woods_Hole",
		DisplayName: "Woods Hole, USA",
		Position:    geo.Point{Latitude: 41.5265, Longitude: -70.6731},
		Timezone:    "GMT-5",
	},
	"port_cape_town": {
		Name:        "Cape_Town",
		DisplayName: "Cape Town, South Africa",
		Position:    geo.Point{Latitude: -33.9249, Longitude: 18.4241},
		Timezone:    "GMT+2",
	},
	"port_punta_arenas": {
		Name:        "Punta_Arenas",
		DisplayName: "Punta Arenas, Chile",
		Position:    geo.Point{Latitude: -53.1638, Longitude: -70.9171},
		Timezone:    "GMT-3",
	},
}

// Lookup resolves a registry identifier to a port definition. Identifiers
// are case-insensitive.
func Lookup(id string) (Port, bool) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(id))]
	return p, ok
}

// Names returns all registry identifiers, for validation error messages.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	return names
}

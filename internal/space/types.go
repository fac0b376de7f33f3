package space

import (
	"errors"
	"time"
)

// OccupancyLevel represents how full a space currently is.
type OccupancyLevel string

const (
	OccupancyEmpty  OccupancyLevel = "vacio"
	OccupancyLow    OccupancyLevel = "bajo"
	OccupancyMedium OccupancyLevel = "medio"
	OccupancyHigh   OccupancyLevel = "alto"
	OccupancyFull   OccupancyLevel = "lleno"
)

// ValidOccupancyLevels is the set of valid occupancy levels.
var ValidOccupancyLevels = []OccupancyLevel{
	OccupancyEmpty, OccupancyLow, OccupancyMedium, OccupancyHigh, OccupancyFull,
}

// IsValidOccupancyLevel returns true if the level is a recognised value.
func IsValidOccupancyLevel(l OccupancyLevel) bool {
	for _, v := range ValidOccupancyLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Location is a space's physical position on campus.
// Latitude and longitude are required; floor and building are optional
// hints for indoor spaces.
type Location struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
	Floor     string  `json:"piso,omitempty"`
	Building  string  `json:"edificio,omitempty"`
}

// Feature is a filterable attribute of a space (wifi, outlets, noise).
// TipoFiltro tells the clients how to render the filter control.
type Feature struct {
	ID         string `json:"idCaracteristica"`
	Name       string `json:"nombre"`
	Value      string `json:"valor"`
	FilterType string `json:"tipoFiltro,omitempty"`
}

// Space represents a campus location in the catalogue.
//
// JSON field names follow the wire contract shared with the clients,
// hence the Spanish tags.
type Space struct {
	ID            string         `json:"idEspacio"`
	Name          string         `json:"nombre"`
	Type          string         `json:"tipo"`
	Occupancy     OccupancyLevel `json:"nivelOcupacion"`
	AverageRating float64        `json:"promedioCalificacion"`
	Location      Location       `json:"ubicacion"`
	Features      []Feature      `json:"caracteristicas"`
	CategoryIDs   []string       `json:"categoriaIds"`
	CreatedAt     time.Time      `json:"fechaCreacion"`
}

// Sentinel errors for space operations.
var (
	ErrSpaceNotFound = errors.New("space not found")
)

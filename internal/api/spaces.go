package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smartbreak/smartbreak-core/internal/space"
)

// maxSpaceRating is the upper bound of the 0-5 rating scale.
const maxSpaceRating = 5

// locationRequest mirrors space.Location with pointer coordinates so a
// missing latitude is distinguishable from latitude 0 (the equator is
// a valid place to take a break).
type locationRequest struct {
	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
	Floor     string   `json:"piso"`
	Building  string   `json:"edificio"`
}

// createSpaceRequest is the request body for POST /espacios.
type createSpaceRequest struct {
	Name          string               `json:"nombre"`
	Type          string               `json:"tipo"`
	Occupancy     space.OccupancyLevel `json:"nivelOcupacion"`
	AverageRating float64              `json:"promedioCalificacion"`
	Location      *locationRequest     `json:"ubicacion"`
	Features      []space.Feature      `json:"caracteristicas"`
	CategoryIDs   []string             `json:"categoriaIds"`
}

// createSpaceResponse is the response body for POST /espacios.
type createSpaceResponse struct {
	Message string       `json:"message"`
	Space   *space.Space `json:"espacio"`
}

// handleListSpaces returns the full catalogue, ordered by name.
func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := s.spaces.List(r.Context())
	if err != nil {
		writeInternalError(w, "Error al listar espacios", err)
		return
	}

	writeJSON(w, http.StatusOK, spaces)
}

// handleGetSpace returns a single space by ID.
func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sp, err := s.spaces.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, space.ErrSpaceNotFound) {
			writeNotFound(w, "Espacio no encontrado")
			return
		}
		writeInternalError(w, "Error al obtener espacio", err)
		return
	}

	writeJSON(w, http.StatusOK, sp)
}

// handleCreateSpace adds a new space to the catalogue. Admin only.
func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	var req createSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "nombre, tipo y ubicacion (latitud, longitud) son obligatorios")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.TrimSpace(req.Type)

	if req.Name == "" || req.Type == "" || req.Location == nil ||
		req.Location.Latitude == nil || req.Location.Longitude == nil {
		writeBadRequest(w, "nombre, tipo y ubicacion (latitud, longitud) son obligatorios")
		return
	}

	occupancy := req.Occupancy
	if occupancy == "" {
		occupancy = space.OccupancyEmpty
	}
	if !space.IsValidOccupancyLevel(occupancy) {
		writeBadRequest(w, "nivelOcupacion inválido")
		return
	}

	if req.AverageRating < 0 || req.AverageRating > maxSpaceRating {
		writeBadRequest(w, "promedioCalificacion debe estar entre 0 y 5")
		return
	}

	// Every caracteristica field is required, matching the stored schema
	for _, f := range req.Features {
		if f.ID == "" || f.Name == "" || f.Value == "" || f.FilterType == "" {
			writeBadRequest(w, "cada caracteristica requiere idCaracteristica, nombre, valor y tipoFiltro")
			return
		}
	}

	sp := &space.Space{
		Name:          req.Name,
		Type:          req.Type,
		Occupancy:     occupancy,
		AverageRating: req.AverageRating,
		Location: space.Location{
			Latitude:  *req.Location.Latitude,
			Longitude: *req.Location.Longitude,
			Floor:     req.Location.Floor,
			Building:  req.Location.Building,
		},
		Features:    req.Features,
		CategoryIDs: req.CategoryIDs,
	}

	if err := s.spaces.Create(r.Context(), sp); err != nil {
		writeInternalError(w, "Error al crear espacio", err)
		return
	}

	writeJSON(w, http.StatusCreated, createSpaceResponse{
		Message: "Espacio creado",
		Space:   sp,
	})
}

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/worldgen"

	"github.com/sirupsen/logrus"
)

// decodeAndValidate reads the request body, validates it against operation's
// registered rules, and unmarshals it into dst. An empty body is treated as
// an empty object so operations with all-optional fields still validate.
func (s *Server) decodeAndValidate(r *http.Request, operation string, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	if err := s.validator.ValidateOperation(operation, raw, int64(len(body))); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// queryParams normalizes the given query-string keys into a
// map[string]interface{} suitable for validation.InputValidator.
func queryParams(r *http.Request, keys ...string) map[string]interface{} {
	params := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		if v := r.URL.Query().Get(key); v != "" {
			params[key] = v
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// generateWorldRequest is the body of POST /api/world/generate.
type generateWorldRequest struct {
	Seed               uint32 `json:"seed"`
	Name               string `json:"name"`
	RegionCount        int    `json:"region_count"`
	LocationsPerRegion [2]int `json:"locations_per_region"`
}

// handleGenerateWorld runs the world generator and re-seeds the
// orchestrator so subsequently requested location content is consistent
// with the newly generated world.
func (s *Server) handleGenerateWorld(w http.ResponseWriter, r *http.Request) {
	var req generateWorldRequest
	if err := s.decodeAndValidate(r, "generate_world", &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Name == "" {
		req.Name = s.cfg.WorldName
	}
	if req.Seed == 0 {
		req.Seed = s.cfg.WorldSeed
	}

	opts := worldgen.DefaultOptions()
	if req.RegionCount > 0 {
		opts.RegionCount = req.RegionCount
	}
	if req.LocationsPerRegion != [2]int{} {
		opts.LocationsPerRegion = req.LocationsPerRegion
	}

	world := s.worldGen.Generate(req.Seed, req.Name, opts)
	s.setWorld(world)
	s.InitializeWorld(req.Seed)

	s.hub.broadcast(wsEvent{Type: "world_generated", Payload: world.Manifest})

	writeJSON(w, http.StatusOK, world)
}

// resolveLocation looks up a location's entities.ResolvedLocation by ID
// from the most recently generated world.
func (s *Server) resolveLocation(locationID string) (entities.ResolvedLocation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved, ok := s.locations[locationID]
	return resolved, ok
}

type generateLocationContentRequest struct {
	LocationID      string                    `json:"location_id"`
	NPCBackground   *int                      `json:"npc_background_count,omitempty"`
	NPCNotable      *int                      `json:"npc_notable_count,omitempty"`
	ItemCount       *int                      `json:"item_count,omitempty"`
	RegionCount     *int                      `json:"region_count,omitempty"`
	ContextOverride *entities.GenerationContext `json:"context_override,omitempty"`
}

// handleGenerateLocationContent implements POST /api/location/content: the
// full-content generation entry point producing NPCs, items, dialogue,
// shops, and quests for one location.
func (s *Server) handleGenerateLocationContent(w http.ResponseWriter, r *http.Request) {
	var req generateLocationContentRequest
	if err := s.decodeAndValidate(r, "generate_location_content", &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	resolved, ok := s.resolveLocation(req.LocationID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown location_id: "+req.LocationID)
		return
	}

	var options *entities.GenerationOptions
	if req.NPCBackground != nil || req.NPCNotable != nil || req.ItemCount != nil || req.ContextOverride != nil {
		options = &entities.GenerationOptions{ItemCount: req.ItemCount, ContextOverrides: req.ContextOverride}
		if req.NPCBackground != nil || req.NPCNotable != nil {
			override := &entities.NPCCountOverride{}
			if req.NPCBackground != nil {
				override.Background = *req.NPCBackground
			}
			if req.NPCNotable != nil {
				override.Notable = *req.NPCNotable
			}
			options.NPCCount = override
		}
	}

	content := s.orchestrator.GenerateLocationContent(resolved, options)

	s.hub.broadcast(wsEvent{Type: "location_content_generated", Payload: map[string]string{"location_id": req.LocationID}})

	writeJSON(w, http.StatusOK, content)
}

// handleGetOrGenerateNPCs implements GET /api/location/npcs?location_id=...
func (s *Server) handleGetOrGenerateNPCs(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	if err := s.validator.ValidateOperation("get_npcs", queryParams(r, "location_id"), 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resolved, ok := s.resolveLocation(locationID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown location_id: "+locationID)
		return
	}
	npcs := s.orchestrator.GetOrGenerateNPCs(locationID, &resolved)
	writeJSON(w, http.StatusOK, npcs)
}

// handleGetOrGenerateItems implements GET /api/location/items?location_id=...
func (s *Server) handleGetOrGenerateItems(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	if err := s.validator.ValidateOperation("get_items", queryParams(r, "location_id"), 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resolved, ok := s.resolveLocation(locationID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown location_id: "+locationID)
		return
	}
	items := s.orchestrator.GetOrGenerateItems(locationID, &resolved)
	writeJSON(w, http.StatusOK, items)
}

// handleGetOrGenerateDialogue implements GET /api/dialogue?npc_id=...&location_id=...
func (s *Server) handleGetOrGenerateDialogue(w http.ResponseWriter, r *http.Request) {
	npcID := r.URL.Query().Get("npc_id")
	locationID := r.URL.Query().Get("location_id")
	if err := s.validator.ValidateOperation("get_dialogue", queryParams(r, "npc_id", "location_id"), 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tree := s.orchestrator.GetOrGenerateDialogue(npcID, locationID)
	if tree == nil {
		writeError(w, http.StatusNotFound, "no dialogue available for npc_id: "+npcID)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// handleGetOrGenerateShop implements GET /api/shop?npc_id=...&location_id=...
func (s *Server) handleGetOrGenerateShop(w http.ResponseWriter, r *http.Request) {
	npcID := r.URL.Query().Get("npc_id")
	locationID := r.URL.Query().Get("location_id")
	if err := s.validator.ValidateOperation("get_shop", queryParams(r, "npc_id", "location_id"), 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shop := s.orchestrator.GetOrGenerateShop(npcID, locationID)
	if shop == nil {
		writeError(w, http.StatusNotFound, "no shop available for npc_id: "+npcID)
		return
	}
	writeJSON(w, http.StatusOK, shop)
}

// handleGetOrGenerateStructureState implements GET /api/structure?location_id=...&hex=...
func (s *Server) handleGetOrGenerateStructureState(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	hexKey := r.URL.Query().Get("hex")
	if err := s.validator.ValidateOperation("get_structure_state", queryParams(r, "location_id", "hex"), 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state := s.orchestrator.GetOrGenerateStructureState(locationID, hexKey)
	writeJSON(w, http.StatusOK, state)
}

// handleClearCache implements POST /api/cache/clear, forcing regeneration
// of every location's content on next request.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.orchestrator.ClearCache()
	s.hub.broadcast(wsEvent{Type: "cache_cleared"})
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

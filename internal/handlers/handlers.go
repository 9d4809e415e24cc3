package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bertagmachine/recruit-funnel/internal/colleges"
	"github.com/bertagmachine/recruit-funnel/internal/forms"
	"github.com/bertagmachine/recruit-funnel/internal/images"
	"github.com/bertagmachine/recruit-funnel/internal/logger"
	"github.com/bertagmachine/recruit-funnel/internal/models"
	"github.com/bertagmachine/recruit-funnel/internal/outreach"
	"github.com/bertagmachine/recruit-funnel/internal/pubsub"
	"github.com/bertagmachine/recruit-funnel/internal/query"
	"github.com/bertagmachine/recruit-funnel/internal/store"
)

// APIHandlers contains all API handler methods
type APIHandlers struct {
	store     store.PipelineStore
	pubsub    *pubsub.PubSub
	drafts    outreach.DraftGenerator
	suggester *forms.Suggester
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(s store.PipelineStore, ps *pubsub.PubSub, drafts outreach.DraftGenerator, suggester *forms.Suggester) *APIHandlers {
	return &APIHandlers{
		store:     s,
		pubsub:    ps,
		drafts:    drafts,
		suggester: suggester,
	}
}

// GetPipelineState returns the full pipeline snapshot
func (h *APIHandlers) GetPipelineState(w http.ResponseWriter, r *http.Request) {
	logger.Debug("Getting pipeline state")
	state, err := h.store.GetState()
	if err != nil {
		logger.Error("Failed to get pipeline state", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// ListColleges returns the college collection filtered and sorted for
// the table view. Query params: search, division, sort, dir.
func (h *APIHandlers) ListColleges(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.GetState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := query.Filter(state.Colleges, q.Get("search"), q.Get("division"))

	sortState := query.DefaultTableSort()
	if key := q.Get("sort"); key != "" {
		sortState.Key = query.TableSortKey(key)
		sortState.Ascending = q.Get("dir") != "desc"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(query.SortTable(filtered, sortState))
}

// GetBoard returns the stage-grouped board view, each column sorted by
// the requested mode. Query params: search, division, columnSort.
func (h *APIHandlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.GetState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := query.Filter(state.Colleges, q.Get("search"), q.Get("division"))

	mode := query.ColumnSortMode(q.Get("columnSort"))
	if mode == "" {
		mode = query.ColumnSortName
	}

	groups := query.GroupByStage(filtered)
	for i := range groups {
		groups[i].Colleges = query.SortColumn(groups[i].Colleges, mode)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}

// AddCollege creates a new college in the pipeline
func (h *APIHandlers) AddCollege(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var form forms.CollegeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		logger.Warn("Failed to decode add college request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	college, err := form.Submit(h.store)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info("Added college", "id", college.ID, "name", college.Name)
	h.pubsub.Publish(pubsub.CollegeEvent(pubsub.EventCollegeAdd, college.ID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(college)
}

// RemoveCollege drops a college from the pipeline
func (h *APIHandlers) RemoveCollege(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.RemoveCollege(req.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.pubsub.Publish(pubsub.CollegeEvent(pubsub.EventCollegeRemove, req.ID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// UpdateStage moves a college to another funnel stage
func (h *APIHandlers) UpdateStage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID    string                 `json:"id"`
		Stage models.RecruitingStage `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !models.ValidStage(req.Stage) {
		http.Error(w, fmt.Sprintf("unknown stage: %s", req.Stage), http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateStage(req.ID, req.Stage); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Updated stage", "id", req.ID, "stage", req.Stage)
	h.pubsub.Publish(pubsub.CollegeEvent(pubsub.EventStageChanged, req.ID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// UpdateInterest sets the athlete's interest rating for a college
func (h *APIHandlers) UpdateInterest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID     string `json:"id"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateInterest(req.ID, req.Rating); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.pubsub.Publish(pubsub.CollegeEvent(pubsub.EventInterestChanged, req.ID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// SuggestColleges returns add-form suggestions for a partial name.
// Query param: q.
func (h *APIHandlers) SuggestColleges(w http.ResponseWriter, r *http.Request) {
	suggestions := h.suggester.Suggest(r.Context(), r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestions)
}

// ListDivisions returns the division filter options, with the
// all-divisions sentinel first.
func (h *APIHandlers) ListDivisions(w http.ResponseWriter, r *http.Request) {
	options := append([]string{query.AllDivisions}, colleges.Divisions()...)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(options)
}

// AddInteraction logs a contact event against a college
func (h *APIHandlers) AddInteraction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CollegeID string                 `json:"collegeId"`
		Type      models.InteractionType `json:"type"`
		CoachName string                 `json:"coachName"`
		Notes     string                 `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := forms.InteractionForm{Type: req.Type, CoachName: req.CoachName, Notes: req.Notes}
	interaction, err := form.Submit(h.store, req.CollegeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if interaction == nil {
		http.Error(w, "College not found", http.StatusNotFound)
		return
	}

	logger.Info("Logged interaction", "college_id", req.CollegeID, "type", req.Type)
	h.pubsub.Publish(pubsub.CollegeEvent(pubsub.EventInteractionAdd, req.CollegeID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(interaction)
}

// GetAthlete returns the athlete profile
func (h *APIHandlers) GetAthlete(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.GetState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state.Athlete)
}

// UpdateAthlete replaces the athlete profile wholesale
func (h *APIHandlers) UpdateAthlete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var athlete models.Athlete
	if err := json.NewDecoder(r.Body).Decode(&athlete); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.ReplaceAthlete(&athlete); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Updated athlete profile", "name", athlete.Name)
	h.pubsub.Publish(pubsub.Event{Type: pubsub.EventAthleteUpdate})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(athlete)
}

// UploadAthleteImage accepts a multipart profile photo upload and stores
// it on the athlete record as a data URI.
func (h *APIHandlers) UploadAthleteImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(images.MaxUploadBytes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dataURI, err := images.ToDataURI(file)
	if err != nil {
		logger.Warn("Rejected image upload", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.store.GetState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	athlete := state.Athlete
	athlete.ProfileImage = dataURI
	if err := h.store.ReplaceAthlete(&athlete); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.pubsub.Publish(pubsub.Event{Type: pubsub.EventAthleteUpdate})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"profileImage": dataURI})
}

// GenerateOutreach produces an AI outreach email draft for a college
func (h *APIHandlers) GenerateOutreach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CollegeID string `json:"collegeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	college, err := h.store.GetCollege(req.CollegeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if college == nil {
		http.Error(w, "College not found", http.StatusNotFound)
		return
	}

	state, err := h.store.GetState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Generating outreach draft", "college_id", req.CollegeID)
	draft := h.drafts.GenerateDraft(r.Context(), &state.Athlete, college)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"draft": draft})
}

// ResetPipeline restores the seed pipeline and athlete
func (h *APIHandlers) ResetPipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger.Info("Resetting pipeline")
	if err := h.store.Reset(); err != nil {
		logger.Error("Failed to reset pipeline", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.pubsub.Publish(pubsub.Event{Type: pubsub.EventAthleteUpdate})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// EventsSSE provides Server-Sent Events for realtime updates
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(eventChan)

	// Send initial connection message
	fmt.Fprintf(w, "data: {\"type\":\"connected\"}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	for {
		select {
		case event := <-eventChan:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-time.After(30 * time.Second):
			// Send keepalive ping
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/bertagmachine/recruit-funnel/internal/auth"
	"github.com/bertagmachine/recruit-funnel/internal/clickhouse"
	"github.com/bertagmachine/recruit-funnel/internal/colleges"
	"github.com/bertagmachine/recruit-funnel/internal/forms"
	"github.com/bertagmachine/recruit-funnel/internal/handlers"
	"github.com/bertagmachine/recruit-funnel/internal/logger"
	"github.com/bertagmachine/recruit-funnel/internal/mocks"
	"github.com/bertagmachine/recruit-funnel/internal/models"
	"github.com/bertagmachine/recruit-funnel/internal/outreach"
	"github.com/bertagmachine/recruit-funnel/internal/pubsub"
	"github.com/bertagmachine/recruit-funnel/internal/query"
	"github.com/bertagmachine/recruit-funnel/internal/store"
)

var (
	templates    *template.Template
	dataStore    store.PipelineStore
	authProvider auth.Provider
	ps           interface {
		Publish(pubsub.Event)
		Subscribe() chan pubsub.Event
		Unsubscribe(chan pubsub.Event)
	}
	chClient interface {
		GetEngagement(string) (int, error)
		GetAllEngagement() (map[string]int, error)
		SyncEngagement(func(string, int) error) error
		Close() error
	}
)

func main() {
	// Initialize logger first
	logger.Init()

	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	logger.Info("Starting recruit-funnel service")

	environment := os.Getenv("ENVIRONMENT")
	development := environment == "" || environment == "development"

	// Initialize storage backend
	dbDriver := os.Getenv("DB_DRIVER")
	if dbDriver == "" {
		dbDriver = "memory"
	}

	var dsn string
	switch dbDriver {
	case "sqlite":
		dsn = os.Getenv("SQLITE_FILE")
	case "postgres":
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			logger.Error("DATABASE_URL environment variable is required for postgres driver")
			log.Fatal("DATABASE_URL environment variable is required for postgres driver")
		}
	}

	var err error
	dataStore, err = store.New(dbDriver, dsn)
	if err != nil {
		logger.Error("Failed to initialize store", "driver", dbDriver, "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer dataStore.Close()
	logger.Info("Store initialized", "driver", dbDriver)

	// Initialize pub/sub: embedded NATS in development, real NATS in production
	natsSubject := os.Getenv("NATS_SUBJECT")
	if natsSubject == "" {
		natsSubject = "recruiting.events"
	}

	if development {
		logger.Info("Starting embedded NATS server for local development")
		opts := pubsub.DefaultEmbeddedNATSOptions()
		opts.Subject = natsSubject
		embeddedNats, err := pubsub.NewEmbeddedNATSPubSub(opts)
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		ps = embeddedNats
		logger.Info("Embedded NATS server ready", "url", embeddedNats.GetServerURL())
	} else {
		natsURL := os.Getenv("NATS_URL")
		if natsURL == "" {
			natsURL = "nats://localhost:4222"
		}
		realNats, err := pubsub.NewNATSPubSub(natsURL, natsSubject)
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		ps = realNats
		logger.Info("Connected to NATS", "url", natsURL)
	}

	// Initialize ClickHouse engagement source (mock in development)
	if development {
		chClient = mocks.NewMockClickHouseClient()
	} else {
		chAddr := os.Getenv("CLICKHOUSE_ADDR")
		if chAddr == "" {
			chAddr = "localhost:9000"
		}
		chDB := os.Getenv("CLICKHOUSE_DB")
		if chDB == "" {
			chDB = "default"
		}
		chUser := os.Getenv("CLICKHOUSE_USER")
		if chUser == "" {
			chUser = "default"
		}
		chPass := os.Getenv("CLICKHOUSE_PASSWORD")

		chClient, err = clickhouse.NewClient(chAddr, chDB, chUser, chPass)
		if err != nil {
			logger.Error("Failed to initialize ClickHouse", "error", err, "address", chAddr)
			log.Fatalf("Failed to initialize ClickHouse: %v", err)
		}
		logger.Info("Connected to ClickHouse", "address", chAddr, "database", chDB)
	}
	defer chClient.Close()

	// Periodic engagement score sync
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		syncEngagement()
		for range ticker.C {
			syncEngagement()
		}
	}()

	// Initialize authentication: mock in development, OIDC in production
	if development {
		logger.Info("Using mock authentication for local development")
		authProvider = auth.NewMockAuth()
	} else {
		oidcBaseURL := os.Getenv("OIDC_BASE_URL")
		oidcClientID := os.Getenv("OIDC_CLIENT_ID")
		oidcClientSecret := os.Getenv("OIDC_CLIENT_SECRET")
		oidcRedirectURL := os.Getenv("OIDC_REDIRECT_URL")

		if oidcBaseURL == "" || oidcClientID == "" || oidcClientSecret == "" {
			logger.Error("OIDC_BASE_URL, OIDC_CLIENT_ID, and OIDC_CLIENT_SECRET are required for production")
			log.Fatal("OIDC_BASE_URL, OIDC_CLIENT_ID, and OIDC_CLIENT_SECRET are required for production")
		}
		if oidcRedirectURL == "" {
			oidcRedirectURL = "http://localhost:3000/auth/callback"
		}

		authProvider = auth.NewOIDCAuth(&auth.OIDCConfig{
			BaseURL:      oidcBaseURL,
			ClientID:     oidcClientID,
			ClientSecret: oidcClientSecret,
			RedirectURL:  oidcRedirectURL,
		})
		logger.Info("Connected to OIDC provider", "url", oidcBaseURL)
	}

	// Outreach draft generator
	drafts, err := outreach.New(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		logger.Error("Failed to initialize outreach generator", "error", err)
		log.Fatalf("Failed to initialize outreach generator: %v", err)
	}
	defer drafts.Close()

	// College suggestion sources
	var remote forms.RemoteSearcher
	scorecard := colleges.NewScorecardClient(os.Getenv("SCORECARD_API_KEY"))
	if scorecard.Configured() {
		remote = scorecard
		logger.Info("College Scorecard search enabled")
	} else {
		logger.Warn("SCORECARD_API_KEY not set, college suggestions are local-only")
	}
	suggester := forms.NewSuggester(remote)

	// Load templates
	templates, err = template.ParseGlob("templates/*.html")
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		log.Fatalf("Failed to parse templates: %v", err)
	}
	logger.Info("Templates loaded successfully")

	// Set up HTTP routes
	mux := http.NewServeMux()

	// Static files
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Auth routes (public)
	mux.HandleFunc("/auth/login", authProvider.LoginHandler)
	mux.HandleFunc("/auth/callback", authProvider.CallbackHandler)
	mux.HandleFunc("/auth/logout", authProvider.LogoutHandler)

	// Page routes (protected)
	mux.HandleFunc("/", homeHandler)
	mux.HandleFunc("/dashboard", authProvider.Middleware(dashboardHandler))
	mux.HandleFunc("/colleges", authProvider.Middleware(collegesHandler))
	mux.HandleFunc("/profile", authProvider.Middleware(profileHandler))
	mux.HandleFunc("/settings", authProvider.Middleware(settingsHandler))

	// API routes
	api := handlers.NewAPIHandlers(dataStore, convertPubSub(ps), drafts, suggester)

	// Pipeline API
	mux.HandleFunc("/api/pipeline/state", api.GetPipelineState)
	mux.HandleFunc("/api/pipeline/board", api.GetBoard)
	mux.HandleFunc("/api/pipeline/stage", api.UpdateStage)
	mux.HandleFunc("/api/pipeline/interest", api.UpdateInterest)
	mux.HandleFunc("/api/pipeline/reset", api.ResetPipeline)

	// Colleges API
	mux.HandleFunc("/api/colleges", api.ListColleges)
	mux.HandleFunc("/api/colleges/add", api.AddCollege)
	mux.HandleFunc("/api/colleges/remove", api.RemoveCollege)
	mux.HandleFunc("/api/colleges/suggest", api.SuggestColleges)
	mux.HandleFunc("/api/divisions", api.ListDivisions)

	// Interactions API
	mux.HandleFunc("/api/interactions/add", api.AddInteraction)

	// Athlete API
	mux.HandleFunc("/api/athlete", api.GetAthlete)
	mux.HandleFunc("/api/athlete/update", api.UpdateAthlete)
	mux.HandleFunc("/api/athlete/image", api.UploadAthleteImage)

	// Outreach API
	mux.HandleFunc("/api/outreach/draft", api.GenerateOutreach)

	// SSE for realtime updates
	mux.HandleFunc("/api/events", api.EventsSSE)

	// Health check endpoints
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/healthz", livenessHandler) // Kubernetes liveness probe
	mux.HandleFunc("/readyz", readinessHandler) // Kubernetes readiness probe

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	addr := "0.0.0.0:" + port
	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatal(err)
	}
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func renderPage(w http.ResponseWriter, page string, data map[string]interface{}) {
	tmpl, err := template.ParseFiles("templates/base.html", "templates/"+page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	state, err := dataStore.GetState()
	if err != nil {
		http.Error(w, "Failed to load state", http.StatusInternalServerError)
		return
	}

	groups := query.GroupByStage(state.Colleges)

	renderPage(w, "dashboard.html", map[string]interface{}{
		"Athlete": state.Athlete,
		"Groups":  groups,
		"User":    auth.GetUser(r),
	})
}

func collegesHandler(w http.ResponseWriter, r *http.Request) {
	state, err := dataStore.GetState()
	if err != nil {
		http.Error(w, "Failed to load state", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := query.Filter(state.Colleges, q.Get("search"), q.Get("division"))

	sortState := query.DefaultTableSort()
	if key := q.Get("sort"); key != "" {
		sortState.Key = query.TableSortKey(key)
		sortState.Ascending = q.Get("dir") != "desc"
	}

	renderPage(w, "colleges.html", map[string]interface{}{
		"Colleges":  query.SortTable(filtered, sortState),
		"Divisions": append([]string{query.AllDivisions}, colleges.Divisions()...),
		"Search":    q.Get("search"),
		"Division":  q.Get("division"),
		"Sort":      sortState,
		"User":      auth.GetUser(r),
	})
}

func profileHandler(w http.ResponseWriter, r *http.Request) {
	state, err := dataStore.GetState()
	if err != nil {
		http.Error(w, "Failed to load state", http.StatusInternalServerError)
		return
	}

	renderPage(w, "profile.html", map[string]interface{}{
		"Athlete":  state.Athlete,
		"Wingspan": state.Athlete.Stat(models.WingspanStat),
		"User":     auth.GetUser(r),
	})
}

func settingsHandler(w http.ResponseWriter, r *http.Request) {
	renderPage(w, "settings.html", map[string]interface{}{
		"GeminiConfigured":    os.Getenv("GEMINI_API_KEY") != "",
		"ScorecardConfigured": os.Getenv("SCORECARD_API_KEY") != "",
		"User":                auth.GetUser(r),
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	// Check store connectivity
	if dataStore != nil {
		if _, err := dataStore.GetState(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["store"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["store"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		checks["store"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	// Check ClickHouse connectivity (only in production)
	environment := os.Getenv("ENVIRONMENT")
	if environment == "production" && chClient != nil {
		if _, err := chClient.GetAllEngagement(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["clickhouse"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			checks["clickhouse"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	}

	if environment == "production" && ps != nil {
		// Connection health is handled internally by NATS
		checks["nats"] = map[string]interface{}{
			"status": "healthy",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}

// livenessHandler handles Kubernetes liveness probes
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// readinessHandler handles Kubernetes readiness probes
func readinessHandler(w http.ResponseWriter, r *http.Request) {
	if dataStore != nil {
		if _, err := dataStore.GetState(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "not_ready",
				"reason":    "store_unavailable",
				"timestamp": time.Now().Unix(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}

// syncEngagement refreshes college engagement scores from analytics
func syncEngagement() {
	logger.Info("Syncing engagement scores")

	err := chClient.SyncEngagement(func(collegeID string, score int) error {
		return dataStore.SetEngagement(collegeID, score)
	})
	if err != nil {
		logger.Error("Failed to sync engagement scores", "error", err)
	} else {
		logger.Info("Engagement scores synced")
	}
}

// convertPubSub wraps the NATS pubsub in a local *pubsub.PubSub bridge:
// publishes go to NATS, NATS events come back to local subscribers.
func convertPubSub(ps interface {
	Publish(pubsub.Event)
	Subscribe() chan pubsub.Event
	Unsubscribe(chan pubsub.Event)
}) *pubsub.PubSub {
	return pubsub.NewWithUpstream(ps)
}

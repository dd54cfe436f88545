package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/slogx"

	_ "github.com/aussiebroadwan/xminds/api/sandbox" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store                 store.Store
	AuthService           *service.AuthService
	CatalogService        *service.CatalogService
	RatingService         *service.RatingService
	RecommendationService *service.RecommendationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerCatalog()
	r.registerRatings()
	r.registerInteractions()
	r.registerRecommendations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", httpx.NotFound())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			xminds Sandbox API
//	@version		0.1.0
//	@description	Local stand-in for the Crossing Minds recommendation API, for developing and testing the xminds SDK and CLI.
//	@description
//	@description				Log in with a service account or a refresh token to obtain a short-lived EdDSA-signed JWT, then send it as a bearer token.
//	@description				Every error is answered with {error_code, error_name, message, error_data}.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/xminds
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured authenticates the caller and rate limits per database. Routes
// addressing one user also require a frontend-user token to match it.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig, userScoped bool) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByDatabase(limit),
	}
	if userScoped {
		mws = append(mws, httpx.RequireOwnUser("user_id"))
	}
	return httpx.Chain(h, mws...)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{AuthService: r.AuthService}

	// Login endpoints are unauthenticated: strict per-IP limit against
	// credential stuffing.
	r.Mux.Handle("/login/service/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: httpx.Chain(http.HandlerFunc(h.HandleService), httpx.RateLimitByIP(httpx.LoginLimit)),
	}))
	r.Mux.Handle("/login/refresh-token/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: httpx.Chain(http.HandlerFunc(h.HandleRefreshToken), httpx.RateLimitByIP(httpx.LoginLimit)),
	}))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("/users/{user_id}/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandleGetUser, httpx.APILimit, true),
		http.MethodPut: r.secured(h.HandlePutUser, httpx.APILimit, true),
	}))
	r.Mux.Handle("/users-bulk/list/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: r.secured(h.HandleListUsers, httpx.APILimit, false),
	}))
	r.Mux.Handle("/items/{item_id}/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandleGetItem, httpx.APILimit, false),
		http.MethodPut: r.secured(h.HandlePutItem, httpx.APILimit, false),
	}))
	r.Mux.Handle("/items-bulk/list/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: r.secured(h.HandleListItems, httpx.APILimit, false),
	}))
}

func (r *Router) registerRatings() {
	h := &RatingsHandler{RatingService: r.RatingService}

	r.Mux.Handle("/users/{user_id}/ratings/{item_id}/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPut:    r.secured(h.HandlePut, httpx.APILimit, true),
		http.MethodDelete: r.secured(h.HandleDelete, httpx.APILimit, true),
	}))
	r.Mux.Handle("/users/{user_id}/ratings/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet:    r.secured(h.HandleList, httpx.APILimit, true),
		http.MethodPut:    r.secured(h.HandleBulkPut, httpx.BulkLimit, true),
		http.MethodDelete: r.secured(h.HandleDeleteAll, httpx.APILimit, true),
	}))
}

func (r *Router) registerInteractions() {
	h := &RatingsHandler{RatingService: r.RatingService}

	r.Mux.Handle("/users/{user_id}/interactions/{item_id}/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: r.secured(h.HandleInteraction, httpx.APILimit, true),
	}))
	r.Mux.Handle("/users/{user_id}/interactions-bulk/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: r.secured(h.HandleInteractionsBulk, httpx.BulkLimit, true),
	}))
}

func (r *Router) registerRecommendations() {
	h := &RecommendationsHandler{RecommendationService: r.RecommendationService}

	r.Mux.Handle("/recommendation/items/{item_id}/items/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandleItemToItems, httpx.APILimit, false),
	}))
	r.Mux.Handle("/recommendation/users/{user_id}/items/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandleUserToItems, httpx.APILimit, true),
	}))
	r.Mux.Handle("/recommendation/sessions/items/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodPost: r.secured(h.HandleSessionToItems, httpx.APILimit, false),
	}))
	r.Mux.Handle("/recommendation/precomputed/items/{item_id}/items/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandlePrecomputedItemToItems, httpx.APILimit, false),
	}))
	r.Mux.Handle("/recommendation/precomputed/users/{user_id}/items/{$}", httpx.Methods(map[string]http.Handler{
		http.MethodGet: r.secured(h.HandlePrecomputedUserToItems, httpx.APILimit, true),
	}))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}

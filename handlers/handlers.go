package handlers

import (
	"dashkit/config"
	"dashkit/engine"
	"dashkit/metrics"
	"dashkit/store"
	"dashkit/types"
	"dashkit/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handlers struct {
	Store   *store.Store
	Cfg     *config.Config
	Runner  *engine.Runner
	Metrics *metrics.Collector
}

type DashkitHandler func(ctx *types.Ctx)

// AuthMiddleware parses the session token and hands the handler a Ctx that
// carries the tenant explicitly. Nothing downstream reads tenant identity
// from anywhere else.
func (h *Handlers) AuthMiddleware(next DashkitHandler) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Auth-Token")
		claim := &types.Claim{}
		tkn, err := jwt.ParseWithClaims(token, claim, func(token *jwt.Token) (interface{}, error) {
			return []byte(h.Cfg.JwtKey), nil
		})
		if err != nil {
			utils.Logger.Error("error while parsing claim", zap.String("err_msg", err.Error()))
			utils.WriteErrorMsg("bad token", http.StatusUnauthorized, rw)
			return
		}
		if !tkn.Valid {
			utils.WriteErrorMsg("not valid token", http.StatusUnauthorized, rw)
			return
		}
		next(&types.Ctx{
			Rw:    rw,
			R:     r,
			Claim: claim,
		})
	}
}

func handleErr(err error, ctx *types.Ctx) {
	switch {
	case errors.Is(err, types.ErrNotExist):
		utils.WriteErrorMsg("items not exist", http.StatusNotFound, ctx.Rw)
	case errors.Is(err, types.ErrAlreadyExist):
		utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
	default:
		utils.WriteErrorMsg("server down", http.StatusInternalServerError, ctx.Rw)
	}
}

// writeRunError writes the run endpoints' public error shape. Engine errors
// carry their own status mapping; store lookups map to 404.
func writeRunError(err error, rw http.ResponseWriter) {
	status := engine.StatusFor(err)
	if errors.Is(err, types.ErrNotExist) {
		status = http.StatusNotFound
	}
	utils.WriteJSON(map[string]string{"error": err.Error()}, status, rw)
}

func pathID(ctx *types.Ctx) (uint, bool) {
	raw := mux.Vars(ctx.R)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.WriteErrorMsg("invalid id", http.StatusBadRequest, ctx.Rw)
		return 0, false
	}
	return uint(id), true
}

func (h *Handlers) Init(router *mux.Router) {
	router.HandleFunc("/api/login", h.Login()).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/datasource", h.AuthMiddleware(h.CreateDataSource())).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/datasource", h.AuthMiddleware(h.GetDataSources())).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/datasource/{id}", h.AuthMiddleware(h.UpdateDataSource())).Methods("PUT", "OPTIONS")
	router.HandleFunc("/api/datasource/{id}", h.AuthMiddleware(h.DeleteDataSource())).Methods("DELETE", "OPTIONS")

	router.HandleFunc("/api/dataset", h.AuthMiddleware(h.CreateDataset())).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/dataset", h.AuthMiddleware(h.GetDatasets())).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/dataset/adhoc-run", h.AuthMiddleware(h.AdhocRun())).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/dataset/{id}", h.AuthMiddleware(h.DeleteDataset())).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/api/dataset/{id}/run", h.AuthMiddleware(h.RunDataset())).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/chart", h.AuthMiddleware(h.CreateChart())).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/chart", h.AuthMiddleware(h.GetCharts())).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/chart/{id}", h.AuthMiddleware(h.DeleteChart())).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/api/chart/{id}/run", h.AuthMiddleware(h.RunChart())).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/dashboard", h.AuthMiddleware(h.CreateDashboard())).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/dashboard", h.AuthMiddleware(h.GetDashboards())).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/dashboard/{id}/chart", h.AuthMiddleware(h.AddChartToDashboard())).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/metrics", h.AuthMiddleware(h.RunMetrics())).Methods("GET", "OPTIONS")

	cors := handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type", "Auth-Token"}),
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE"}),
	)
	router.Use(cors)
}

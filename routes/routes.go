package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"societydesk/handler"
	"societydesk/middleware"
	"societydesk/models"
	"societydesk/service"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	complaintService *service.ComplaintService,
	accountService *service.AccountService,
	jwtSecret string,
) *mux.Router {
	router := mux.NewRouter()

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService)
	authHandler := handler.NewAuthHandler(accountService)
	directoryHandler := handler.NewDirectoryHandler(accountService)

	authMiddleware := middleware.NewAuthMiddleware(jwtSecret)

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public)
	auth := apiV1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/resident", authHandler.RegisterResident).Methods("POST")
	auth.HandleFunc("/register/worker", authHandler.RegisterWorker).Methods("POST")
	auth.HandleFunc("/register/manager", authHandler.RegisterManager).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.Handle("/me", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Complaint routes (protected)
	complaints := apiV1.PathPrefix("/complaints").Subrouter()

	// GET /api/v1/complaints - role-dependent listing (REQUIRES AUTH)
	complaints.Handle("", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.List))).Methods("GET")

	// POST /api/v1/complaints - residents file complaints
	complaints.Handle("", authMiddleware.RequireRole(models.RoleResident, http.HandlerFunc(complaintHandler.Create))).Methods("POST")

	// POST /api/v1/complaints/resolve - worker presents the scanned confirmation code.
	// Registered before /{id} so mux never treats "resolve" as an id.
	complaints.Handle("/resolve", authMiddleware.RequireRole(models.RoleWorker, http.HandlerFunc(complaintHandler.Resolve))).Methods("POST")

	// GET /api/v1/complaints/{id} - visibility enforced per role in the service
	complaints.Handle("/{id}", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Get))).Methods("GET")

	// PATCH /api/v1/complaints/{id} - role-filtered field updates
	complaints.Handle("/{id}", authMiddleware.RequireAuth(http.HandlerFunc(complaintHandler.Update))).Methods("PATCH")

	// DELETE /api/v1/complaints/{id} - manager only
	complaints.Handle("/{id}", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(complaintHandler.Delete))).Methods("DELETE")

	// POST /api/v1/complaints/{id}/assign - manager hands the complaint to a worker
	complaints.Handle("/{id}/assign", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(complaintHandler.Assign))).Methods("POST")

	// POST /api/v1/complaints/{id}/accept - assigned worker starts the job
	complaints.Handle("/{id}/accept", authMiddleware.RequireRole(models.RoleWorker, http.HandlerFunc(complaintHandler.Accept))).Methods("POST")

	// Resolution audit records (manager only)
	apiV1.Handle("/resolutions", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(complaintHandler.ListResolutions))).Methods("GET")

	// Directory routes (manager only)
	apiV1.Handle("/workers", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(directoryHandler.ListWorkers))).Methods("GET")
	apiV1.Handle("/workers/{id}", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(directoryHandler.GetWorker))).Methods("GET")
	apiV1.Handle("/residents/{id}", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(directoryHandler.GetResident))).Methods("GET")
	apiV1.Handle("/managers/{id}", authMiddleware.RequireRole(models.RoleManager, http.HandlerFunc(directoryHandler.GetManager))).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}

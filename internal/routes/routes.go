package routes

import (
	"net/http"

	"github.com/templui/userbase/internal/app"
	"github.com/templui/userbase/internal/handler"
	"github.com/templui/userbase/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	account := handler.NewAccountHandler(app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService)
	pictures := handler.NewPictureHandler(app.Pictures)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /test", handler.Test)
	mux.HandleFunc("GET /health", handler.Health)

	// Auth
	mux.HandleFunc("POST /signup", auth.Signup)
	mux.HandleFunc("POST /login", auth.Login)

	// Accounts
	mux.HandleFunc("GET /users", account.ListUsers)
	mux.HandleFunc("DELETE /user/{email}", account.DeleteUser)
	mux.HandleFunc("GET /checkEmail/{email}", account.CheckEmail)
	mux.HandleFunc("PUT /updateProfilePicture", account.UpdatePicture)

	// Pictures (raw JSON, no envelope)
	mux.HandleFunc("GET /randomProfilePicture", pictures.Random)
	mux.HandleFunc("GET /profilePictureOptions/{count}", pictures.Options)

	// Profiles
	mux.HandleFunc("GET /userProfile/{email}", profile.Get)
	mux.HandleFunc("PUT /updateUserProfile", profile.Update)
	mux.HandleFunc("GET /allUserData", profile.List)
	mux.HandleFunc("DELETE /userProfile/{email}", profile.Delete)
	mux.HandleFunc("GET /checkUserProfile/{email}", profile.Exists)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigin),
		middleware.Config(app.Cfg),
	)

	return handler
}

package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/device_token", authMiddleware.ThenFunc(app.userHandler.RegisterDeviceToken))
	mux.Put("/user", authMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))

	// Properties
	mux.Post("/properties", authMiddleware.ThenFunc(app.propertyHandler.CreateProperty))
	mux.Get("/properties/featured", standardMiddleware.ThenFunc(app.propertyHandler.GetFeaturedProperties))
	mux.Get("/properties/:id", standardMiddleware.ThenFunc(app.propertyHandler.GetPropertyByID))
	mux.Put("/properties/:id", authMiddleware.ThenFunc(app.propertyHandler.UpdateProperty))
	mux.Del("/properties/:id", authMiddleware.ThenFunc(app.propertyHandler.DeleteProperty))
	mux.Post("/properties/:id/photos", authMiddleware.ThenFunc(app.propertyHandler.UploadPhoto))
	mux.Get("/my_properties", authMiddleware.ThenFunc(app.propertyHandler.GetMyProperties))
	mux.Get("/trips", authMiddleware.ThenFunc(app.propertyHandler.GetTrips))

	// Search
	mux.Get("/search", standardMiddleware.ThenFunc(app.searchHandler.Search))
	mux.Get("/autocomplete", standardMiddleware.ThenFunc(app.searchHandler.Autocomplete))

	// Wishlists
	mux.Post("/properties/:id/wishlist", authMiddleware.ThenFunc(app.wishlistHandler.AddToWishlist))
	mux.Del("/properties/:id/wishlist", authMiddleware.ThenFunc(app.wishlistHandler.RemoveFromWishlist))
	mux.Get("/properties/:id/wishlist", authMiddleware.ThenFunc(app.wishlistHandler.IsWishlisted))
	mux.Get("/wishlist", authMiddleware.ThenFunc(app.wishlistHandler.GetWishlist))

	// Reservations
	mux.Post("/reservations", authMiddleware.ThenFunc(app.reservationHandler.CreateReservation))
	mux.Put("/reservations/:id/accept", authMiddleware.ThenFunc(app.reservationHandler.AcceptReservation))
	mux.Put("/reservations/:id/refuse", authMiddleware.ThenFunc(app.reservationHandler.RefuseReservation))
	mux.Put("/reservations/:id/cancel", authMiddleware.ThenFunc(app.reservationHandler.CancelReservation))
	mux.Post("/reservations/:id/evaluation", authMiddleware.ThenFunc(app.reservationHandler.EvaluateReservation))
	mux.Get("/reservations/property/:property_id", authMiddleware.ThenFunc(app.reservationHandler.GetReservationsByProperty))

	// Talks
	mux.Get("/talks", authMiddleware.ThenFunc(app.talkHandler.GetTalks))
	mux.Post("/talks/message", authMiddleware.ThenFunc(app.talkHandler.CreateMessage))
	mux.Get("/talks/:id/messages", authMiddleware.ThenFunc(app.talkHandler.GetMessages))

	// WebSocket
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	return mux
}

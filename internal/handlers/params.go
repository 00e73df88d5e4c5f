package handlers

import (
	"net/http"
	"strconv"
)

// currentUserID reads the authenticated user id the JWT middleware stored in
// the request context. Zero means the route was reached without auth.
func currentUserID(r *http.Request) int {
	if id, ok := r.Context().Value("user_id").(int); ok {
		return id
	}
	return 0
}

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(":" + name))
}

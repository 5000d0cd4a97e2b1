package server

import (
	"context"
	"net/http"

	"doubtsolver/internal/handlers"
	applog "doubtsolver/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	public := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/healthz", handlers.Health},
		{"/login", handlers.Login},
		{"/signup", handlers.Signup},
		{"/logout", handlers.Logout},
		{"/original", handlers.Original},
		{"/original.html", handlers.Original},
		{"/", handlers.Home},
	}
	for _, route := range public {
		mux.HandleFunc(route.path, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.path)
	}

	protected := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/app", handlers.Dashboard},
		{"/app/doubts", handlers.Doubts},
		{"/app/doubts/answer", handlers.AnswerDoubt},
		{"/app/doubts/resolve", handlers.ResolveDoubt},
		{"/app/doubts/clear-resolved", handlers.ClearResolved},
		{"/app/doubts/clear-unresolved", handlers.ClearUnresolved},
		{"/app/reset", handlers.ResetAll},
		{"/app/theme", handlers.ToggleTheme},
		{"/app/api/doubts", handlers.DoubtsAPI},
	}
	for _, route := range protected {
		mux.Handle(route.path, handlers.RequireAuthentication(route.handler))
		applog.Debug(context.Background(), "route registered", "path", route.path, "protected", true)
	}
	return mux
}

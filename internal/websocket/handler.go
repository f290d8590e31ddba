package websocket

import (
	"net/http"

	"github.com/RajSapale04/Meditrack/internal/auth"
	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades an authenticated request and runs it as a Hub
// client for the caller's account. It must sit behind RequireAuth.
func HandleWebSocket(hub *Hub, allowedOrigin string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns(allowedOrigin),
		})
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, userID)
		client.Run(r.Context())
	}
}

func originPatterns(allowedOrigin string) []string {
	if allowedOrigin == "" {
		return nil
	}
	return []string{stripScheme(allowedOrigin)}
}

func stripScheme(origin string) string {
	for _, p := range []string{"https://", "http://"} {
		if len(origin) > len(p) && origin[:len(p)] == p {
			return origin[len(p):]
		}
	}
	return origin
}

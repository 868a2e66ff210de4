package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pixelarena/server/config"
	"pixelarena/server/handlers"
	"pixelarena/server/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from the game's own origin; the invite
		// code gate lives in the client, not here.
		return true
	},
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := config.Load("."); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(config.GetString("logLevel")); err == nil {
		log = log.Level(level)
	}

	clientManager := handlers.NewClientManager(log)
	game := services.NewGameService(clientManager, config.CurrentTuning(), log)
	defer game.Shutdown()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("failed to upgrade connection")
			return
		}
		handlers.HandleClientConnection(conn, game, clientManager, log)
	})

	port := config.GetString("port")
	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

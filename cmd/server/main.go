// Command server runs the Bad Ice Cream match server: matchmaking,
// websocket transport, and the session router, wired from a cobra root
// command.
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"badicecream/internal/config"
	"badicecream/internal/session"
	"badicecream/internal/storage"
	"badicecream/internal/transport"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "server",
		Short: "Run the Bad Ice Cream match server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults built in if omitted)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	store, err := storage.Open(cfg.Database.Path, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	router := session.New(cfg, log, store, rng)
	go router.Run()
	defer router.Stop()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWS(router, log, w, r)
	})

	log.WithField("addr", cfg.Server.ListenAddr).Info("server starting")
	return http.ListenAndServe(cfg.Server.ListenAddr, nil)
}

// handleWS resolves the connecting user's identity and level choice from
// the query string, queues them for matchmaking, and upgrades to a
// websocket. There is no account system: a returning user supplies its
// own userId to resume a session or reconnect mid-match.
func handleWS(router *session.Router, log *logrus.Logger, w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = uuid.New().String()
	}

	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil || level < 1 || level > 3 {
		level = 1
	}

	color := r.URL.Query().Get("color")
	displayName := r.URL.Query().Get("name")

	router.Join(userID, level, color, displayName)
	transport.ServeWS(router, log, userID, w, r)
}

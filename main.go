package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlandbot/internal/journal"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $GITLAND_CONFIG or gitland.yaml)")
	once := flag.Bool("once", false, "play a single cycle per agent and exit")
	flag.Parse()

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder Recorder
	if config.Journal != "" {
		j, err := journal.Open(config.Journal)
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer j.Close()
		recorder = j
	}

	var publisher Publisher
	var server *http.Server
	if config.Listen != "" && !*once {
		hub := newHub()
		go hub.run(ctx)
		publisher = hub

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			serveWs(hub, w, r)
		})
		server = &http.Server{Addr: config.Listen, Handler: mux}
		go func() {
			log.Printf("Spectator hub listening on %s", config.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Spectator hub stopped: %v", err)
			}
		}()
	}

	manager := NewAgentManager(config, recorder, publisher)

	if *once {
		if err := manager.RunOnce(ctx); err != nil {
			log.Fatalf("Cycle failed: %v", err)
		}
		return
	}

	if err := manager.Start(ctx); err != nil {
		log.Fatalf("Failed to start agents: %v", err)
	}
	log.Printf("gitland-bot started with %d agent(s), interval %v", len(config.Agents), config.Interval)

	<-ctx.Done()

	log.Println("Shutting down gitland-bot...")
	manager.Stop()
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}
	log.Printf("gitland-bot stopped: %v", manager.GetStats())
}

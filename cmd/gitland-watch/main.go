package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"

	"gitlandbot/internal/protocol"
)

func main() {
	defaultURL := os.Getenv("GITLAND_WATCH_URL")
	if defaultURL == "" {
		defaultURL = "ws://localhost:8090/ws"
	}
	url := flag.String("url", defaultURL, "Spectator hub websocket URL")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *url, err)
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	err = run(screen, conn)
	screen.Fini()
	if err != nil {
		log.Printf("Connection closed: %v", err)
	}
}

// run redraws on every hub message and returns when the user quits or the
// hub goes away.
func run(screen tcell.Screen, conn *websocket.Conn) error {
	messages := make(chan *protocol.Message, 16)
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg protocol.Message
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			messages <- &msg
		}
	}()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	view := NewView()
	view.Draw(screen)
	for {
		select {
		case msg := <-messages:
			view.Apply(msg)
			view.Draw(screen)

		case err := <-readErr:
			return err

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
				if ev.Key() == tcell.KeyTab {
					view.Next()
				}
				view.Draw(screen)
			case *tcell.EventResize:
				screen.Sync()
				view.Draw(screen)
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || (ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0)
	}
	return false
}

// Command watch follows the inventory change feed and prints every mutation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

type changeMessage struct {
	Type    string `json:"type"`
	Data    string `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Event   struct {
		Kind      string    `json:"kind"`
		ID        string    `json:"id"`
		Summary   string    `json:"summary"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"event"`
}

func main() {
	server := flag.String("server", "http://localhost:8080", "inventory server base URL")
	flag.Parse()

	wsURL, err := feedURL(*server)
	if err != nil {
		log.Fatalf("Invalid server URL: %v", err)
	}

	fmt.Printf("Connecting to: %s\n", wsURL)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("WebSocket connection failed with status %d: %v", resp.StatusCode, err)
		}
		log.Fatalf("WebSocket connection failed: %v", err)
	}
	defer conn.Close()

	fmt.Println("✓ Subscribed to inventory changes")

	if err := conn.WriteJSON(map[string]string{"type": "ping", "data": "watch"}); err != nil {
		log.Fatalf("Failed to send ping: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					color.Red("✗ Connection lost: %v", err)
				}
				return
			}
			printMessage(payload)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-done:
	case <-interrupt:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

// feedURL turns an http(s) base URL into the ws(s) change feed URL
func feedURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws", "":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

func printMessage(payload []byte) {
	var msg changeMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		color.Yellow("? %s", payload)
		return
	}

	switch msg.Type {
	case "pong":
		color.Cyan("✓ Server answered ping (%s)", msg.Data)
	case "error":
		color.Red("✗ %s", msg.Message)
	case "inventory_change":
		ev := msg.Event
		line := fmt.Sprintf("%s  %-15s %s %s",
			ev.Timestamp.Local().Format("15:04:05"), ev.Kind, ev.ID, ev.Summary)
		kindColor(ev.Kind).Println(line)
	default:
		fmt.Println(string(payload))
	}
}

func kindColor(kind string) *color.Color {
	switch {
	case strings.HasSuffix(kind, ".created"):
		return color.New(color.FgGreen)
	case strings.HasSuffix(kind, ".disposed"), strings.HasSuffix(kind, ".removed"):
		return color.New(color.FgRed)
	case strings.HasSuffix(kind, ".toggled"):
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgBlue)
	}
}

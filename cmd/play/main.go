// Command play is a terminal client for the Drop Four server. It starts,
// joins, or watches a game over the WebSocket endpoint, prints every event
// as it arrives, and reads column numbers from stdin for the player's moves.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	gws "github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"

	"github.com/dropfour/dropfour/transport/websocket"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "terminal client for the Drop Four game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: "ws://localhost:8080/ws",
				Usage: "WebSocket endpoint of the game server",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "start a new game as Player 1 and print the share tokens",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSession(ctx, cmd.String("server"), websocket.Event{
						Type: websocket.EventInit,
					}, true)
				},
			},
			{
				Name:      "join",
				Usage:     "take the Player 2 seat using a join token",
				ArgsUsage: "<join-token>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					token := cmd.Args().First()
					if token == "" {
						return fmt.Errorf("join requires a join token")
					}
					return runSession(ctx, cmd.String("server"), websocket.Event{
						Type: websocket.EventInit,
						Join: token,
					}, true)
				},
			},
			{
				Name:      "watch",
				Usage:     "watch a game using a watch token",
				ArgsUsage: "<watch-token>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					token := cmd.Args().First()
					if token == "" {
						return fmt.Errorf("watch requires a watch token")
					}
					return runSession(ctx, cmd.String("server"), websocket.Event{
						Type: websocket.EventInit,
						Watch: token,
					}, false)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runSession dials the server, sends the init message, and then mirrors
// events to stdout. When interactive, stdin lines are parsed as column
// numbers and sent as moves.
func runSession(ctx context.Context, serverURL string, init websocket.Event, interactive bool) error {
	conn, _, err := gws.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverURL, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(init); err != nil {
		return fmt.Errorf("failed to send init: %w", err)
	}

	// Reader: print every event until the server closes the connection.
	done := make(chan error, 1)
	go func() {
		for {
			var event websocket.Event
			if err := conn.ReadJSON(&event); err != nil {
				if gws.IsCloseError(err, gws.CloseNormalClosure, gws.CloseGoingAway) {
					done <- nil
				} else {
					done <- fmt.Errorf("connection lost: %w", err)
				}
				return
			}
			fmt.Println(formatEvent(event))
		}
	}()

	if !interactive {
		return <-done
	}

	fmt.Println("Enter a column number to drop a piece (Ctrl-D to quit).")

	// Writer: stdin lines become moves. A read error or EOF ends the game
	// by closing the connection.
	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- scanner.Text()
		}
		close(input)
	}()

	for {
		select {
		case err := <-done:
			return err
		case line, ok := <-input:
			if !ok {
				return nil
			}
			column, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Println("Please enter a column number.")
				continue
			}
			move := websocket.Event{Type: websocket.EventPlay, Column: &column}
			if err := conn.WriteJSON(move); err != nil {
				return fmt.Errorf("failed to send move: %w", err)
			}
		}
	}
}

// formatEvent renders one server event as a line of output.
func formatEvent(e websocket.Event) string {
	switch e.Type {
	case websocket.EventInit:
		return fmt.Sprintf("Game started.\n  join token:  %s\n  watch token: %s", e.Join, e.Watch)
	case websocket.EventPlay:
		if e.Column == nil || e.Row == nil {
			return fmt.Sprintf("%s played", e.Player)
		}
		return fmt.Sprintf("%s dropped in column %d (row %d)", e.Player, *e.Column, *e.Row)
	case websocket.EventWin:
		return fmt.Sprintf("%s wins!", e.Player)
	case websocket.EventError:
		return fmt.Sprintf("rejected: %s", e.Message)
	default:
		return fmt.Sprintf("unknown event: %+v", e)
	}
}

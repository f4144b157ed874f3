package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/movegen"
	"github.com/cricklet/chessrules/internal/runner"
	"github.com/cricklet/chessrules/internal/search"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type UpdateToWeb struct {
	FenString     string   `json:"fenString"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	InCheck       bool     `json:"inCheck"`
	Outcome       string   `json:"outcome"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	NewFen      *string `json:"newFen"`
	WhitePlayer *string `json:"whitePlayer"`
	BlackPlayer *string `json:"blackPlayer"`
	Selection   *string `json:"selection"`
	Move        *string `json:"move"`
	Ready       *bool   `json:"ready"`
	Rewind      *int    `json:"rewind"`
	Resign      *bool   `json:"resign"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.WhitePlayer != nil {
		return fmt.Sprint("MessageFromWeb WhitePlayer: ", *u.WhitePlayer)
	}
	if u.BlackPlayer != nil {
		return fmt.Sprint("MessageFromWeb BlackPlayer: ", *u.BlackPlayer)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Ready != nil {
		return fmt.Sprint("MessageFromWeb Ready: ", *u.Ready)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	if u.Resign != nil {
		return fmt.Sprint("MessageFromWeb Resign: ", *u.Resign)
	}
	return "MessageFromWeb unknown"
}

type PlayerType int

const (
	User PlayerType = iota
	Computer
	Unknown
)

func (t PlayerType) String() string {
	switch t {
	case User:
		return "user"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

func PlayerTypeFromString(s string) PlayerType {
	switch s {
	case "user":
		return User
	case "computer":
		return Computer
	}
	return Unknown
}

type MovesResponse struct {
	Fen     string   `json:"fen"`
	Moves   []string `json:"moves"`
	InCheck bool     `json:"inCheck"`
}

type PerftResponse struct {
	Fen       string         `json:"fen"`
	Depth     int            `json:"depth"`
	Total     int            `json:"total"`
	Divisions map[string]int `json:"divisions"`
}

const maxPerftDepth = 5

func writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Println("json encode:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err Error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func positionFromRequest(r *http.Request) (*game.Position, Error) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = game.StartFen
	}
	return game.PositionFromFenString(fen)
}

func movesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := positionFromRequest(r)
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	gen := movegen.NewLegalMoveGenerator()
	moves := gen.GenerateLegalMoves(p)
	writeJson(w, http.StatusOK, MovesResponse{
		Fen:     game.FenString(p),
		Moves:   MoveStrings(moves),
		InCheck: gen.IsInCheck(),
	})
}

func perftHandler(w http.ResponseWriter, r *http.Request) {
	depth, parseErr := strconv.Atoi(mux.Vars(r)["depth"])
	if parseErr != nil || depth < 1 || depth > maxPerftDepth {
		writeError(w, http.StatusBadRequest, Errorf("depth must be between 1 and %v", maxPerftDepth))
		return
	}

	p, err := positionFromRequest(r)
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	divisions, err := movegen.PerftParallel(r.Context(), p, depth, 4, nil)
	if !IsNil(err) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	response := PerftResponse{
		Fen:       game.FenString(p),
		Depth:     depth,
		Total:     movegen.DivisionTotal(divisions),
		Divisions: map[string]int{},
	}
	for _, d := range divisions {
		response.Divisions[d.First] = d.Second
	}
	writeJson(w, http.StatusOK, response)
}

// restartFromFen starts a new game from fen. When fen is rejected the
// previous game is replayed, or the standard start if there was none.
func restartFromFen(r *runner.GameRunner, fen string) Error {
	startFen, moves := r.StartFen, r.MoveHistory()
	if startFen == "" {
		startFen, moves = game.StartFen, nil
	}

	r.Reset()
	err := r.SetupPosition(PositionSetup{Fen: fen})
	if IsNil(err) {
		return NilError
	}

	r.Reset()
	restoreErr := r.SetupPosition(PositionSetup{Fen: startFen, Moves: moves})
	if !IsNil(restoreErr) {
		return Join(err, restoreErr)
	}
	return err
}

func newApiRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/moves", movesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/perft/{depth:[0-9]+}", perftHandler).Methods(http.MethodGet)
	return router
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	var upgrader = websocket.Upgrader{}

	var ws = func(w http.ResponseWriter, r *http.Request) {
		playerTypes := [2]PlayerType{User, User}
		ready := false

		c, err := upgrader.Upgrade(w, r, nil)
		if !IsNil(err) {
			log.Println("upgrade:", err)
			return
		}
		defer c.Close()

		var log = func(message string) {
			log.Print("logging: ", message)
			bytes, err := json.Marshal([]string{message})
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("logging: json marshal: ", err))
			}
			err = c.WriteMessage(websocket.TextMessage, bytes)
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("logging: websocket: ", err))
			}
		}

		logger := FuncLogger(func(message string) {
			log(fmt.Sprintf("server: %v", message))
		})

		gameRunner := runner.NewGameRunner(
			FuncLogger(func(message string) {
				log(fmt.Sprintf("search: %v", message))
			}),
			search.DefaultSearchOptions,
		)
		setupErr := gameRunner.SetupPosition(PositionSetup{Fen: game.StartFen})
		if !IsNil(setupErr) {
			logger.Println("setup: ", setupErr)
			return
		}

		var finalizeUpdate = func(update UpdateToWeb) {
			update.FenString = gameRunner.FenString()
			update.Player = gameRunner.Player().String()
			update.InCheck = gameRunner.IsInCheck()
			update.Outcome = gameRunner.Outcome().String()
			if lastMove := gameRunner.LastMove(); lastMove.HasValue() {
				update.LastMove = lastMove.Value().String()
			}

			logger.Println("sending", update)
			bytes, err := json.Marshal(update)
			if !IsNil(err) {
				logger.Println("update: json marshal: ", err)
			}
			err = c.WriteMessage(websocket.TextMessage, bytes)
			if !IsNil(err) {
				logger.Println("websocket: ", err)
			}
		}

		var performMove = func() bool {
			if !ready || gameRunner.Outcome().IsOver() {
				return false
			}
			if playerTypes[gameRunner.Player()] != Computer {
				return false
			}

			bestMove, err := gameRunner.Search(SearchParams{})
			if !IsNil(err) {
				logger.Println("search: ", err)
				return false
			}

			if bestMove.IsEmpty() {
				logger.Println("no move found")
				return false
			}

			logger.Println("search: ", bestMove.Value())
			err = gameRunner.PerformMoveFromString(bestMove.Value())
			if !IsNil(err) {
				logger.Println("perform: ", bestMove.Value(), err)
				return false
			}
			return true
		}

		var handleMessageFromWeb = func(bytes []byte) {
			var message MessageFromWeb
			err := json.Unmarshal(bytes, &message)
			if !IsNil(err) {
				logger.Println("handleMessageFromWeb: json unmarshal: ", err)
				return
			}
			logger.Println("received", message)

			var update UpdateToWeb
			shouldUpdate := false

			if message.NewFen != nil {
				err := restartFromFen(gameRunner, *message.NewFen)
				if !IsNil(err) {
					logger.Println("setup: ", err)
				}
				shouldUpdate = true
			} else if message.WhitePlayer != nil {
				playerTypes[White] = PlayerTypeFromString(*message.WhitePlayer)
			} else if message.BlackPlayer != nil {
				playerTypes[Black] = PlayerTypeFromString(*message.BlackPlayer)
			} else if message.Selection != nil {
				if *message.Selection != "" {
					update.Selection = *message.Selection
					result, err := gameRunner.MovesForSelection(*message.Selection)
					if !IsNil(err) {
						logger.Println("moves for: ", *message.Selection, err)
					}
					update.PossibleMoves = result
				}
				shouldUpdate = true
			} else if message.Move != nil {
				err := gameRunner.PerformMoveFromString(*message.Move)
				if !IsNil(err) {
					logger.Println("perform: ", *message.Move, err)
				}
				shouldUpdate = true
			} else if message.Rewind != nil {
				err := gameRunner.Rewind(*message.Rewind)
				if !IsNil(err) {
					logger.Println("rewind: ", *message.Rewind, err)
				}
				shouldUpdate = true
			} else if message.Resign != nil && *message.Resign {
				err := gameRunner.Resign()
				if !IsNil(err) {
					logger.Println("resign: ", err)
				}
				shouldUpdate = true
			} else if message.Ready != nil {
				if !ready {
					ready = *message.Ready
					shouldUpdate = true
				}
			}

			if shouldUpdate {
				finalizeUpdate(update)
			}
			for performMove() {
				finalizeUpdate(UpdateToWeb{})
			}
		}

		for {
			_, message, err := c.ReadMessage()
			if !IsNil(err) {
				logger.Printf("Error: %v", err)
				break
			}
			handleMessageFromWeb(message)
		}
	}

	port := 8002

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	log.Println("serving at", port)

	router := newApiRouter()
	router.HandleFunc("/ws", ws)

	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), router))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

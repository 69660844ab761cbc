package protocol

// Message types: Server → Client
const (
	MsgHello     = "hello"
	MsgEntry     = "entry"      // payload: one game log entry
	MsgGameState = "game_state" // payload: spectator view after the entry
	MsgGameOver  = "game_over"
	MsgError     = "error"
)

// Message types: Client → Server
const (
	MsgSync = "sync"
)

// Hello is the first message a spectator receives.
type Hello struct {
	GameID  string   `json:"game_id"`
	Seats   []string `json:"seats"`
	Entries int      `json:"entries"`
}

// GameOver announces the end of the game.
type GameOver struct {
	Winner string `json:"winner"`
	Turns  int    `json:"turns"`
}

// SyncMsg asks the server to replay the backlog from entry sequence From.
type SyncMsg struct {
	From int `json:"from"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}

// GameSummary describes one game in the /api/games listing.
type GameSummary struct {
	ID      string   `json:"id"`
	Seats   []string `json:"seats"`
	Entries int      `json:"entries"`
	Over    bool     `json:"over"`
	Winner  string   `json:"winner,omitempty"`
}

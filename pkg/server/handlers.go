package server

import (
	"Tally/handler"
)

type Handlers struct {
	Auth        *handler.Auth
	Record      *handler.Record
	Redemption  *handler.Redemption
	Stats       *handler.Stats
	Leaderboard *handler.Leaderboard
	Profile     *handler.Profile
	Guest       *handler.Guest
}

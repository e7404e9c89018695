package db

import "time"

type Player struct {
	PlayerId    string    `db:"player_id"`
	DisplayName string    `db:"display_name"`
	LastSeen    time.Time `db:"last_seen"`
}

//go:generate mockery --with-expecter=true --name=Repository --output=./mocks
package db

import (
	"github.com/anchal00/farkle/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// Repository is the player directory. It stores identity data only; rooms and
// scores live in memory and die with the process.
type Repository interface {
	SetupConnection(database string) error
	CloseConnection()
	UpsertPlayer(playerId, displayName string) error
	GetPlayerById(playerId string) *Player
}

func SetupDB(dbName string) (Repository, error) {
	var repository Repository = &SqliteStore{
		Logger: logger.New("database"),
	}
	err := repository.SetupConnection(dbName)
	return repository, err
}

package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/anchal00/farkle/internal/logger"
	"github.com/jmoiron/sqlx"
)

var schema = `CREATE TABLE IF NOT EXISTS players (
  player_id varchar(64) PRIMARY KEY,
  display_name varchar(32) NOT NULL,
  last_seen timestamp NOT NULL,

  CONSTRAINT non_empty_player CHECK (TRIM(player_id) <> '')
);`

const maxDisplayName = 32

type SqliteStore struct {
	Conn   *sqlx.DB
	Logger logger.Logger
	now    func() time.Time
}

func (s *SqliteStore) SetupConnection(dbname string) error {
	sqliteDbfile := dbname
	if dbname != ":memory:" {
		sqliteDbfile = dbname + ".db"
	}
	db, err := sqlx.Connect("sqlite3", sqliteDbfile)
	if err != nil {
		s.Logger.Error("Database setup failed", err)
		return err
	}
	if dbname == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	s.Conn = db
	if _, err := s.Conn.Exec(schema); err != nil {
		s.Logger.Error("Failed to apply schema", err)
		return err
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.Logger.Info(fmt.Sprintf("Database %s setup successfully", sqliteDbfile))
	return nil
}

func (s *SqliteStore) CloseConnection() {
	s.Logger.Info("Closing database connection")
	if err := s.Conn.Close(); err != nil {
		s.Logger.Error("Failed to tear down database connection", err)
		return
	}
	s.Logger.Info("Database connection closed successfully")
}

func (s *SqliteStore) UpsertPlayer(playerId, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > maxDisplayName {
		displayName = displayName[:maxDisplayName]
	}
	txn, err := s.Conn.Beginx()
	if err != nil {
		s.Logger.Error("Failed to upsert player", err)
		return err
	}
	upsertSQL := `INSERT INTO players(player_id, display_name, last_seen) VALUES(?, ?, ?)
  ON CONFLICT(player_id) DO UPDATE SET display_name = excluded.display_name, last_seen = excluded.last_seen;`
	_, err = txn.Exec(upsertSQL, playerId, displayName, s.now().UTC())
	if err != nil {
		s.Logger.Error("Failed to upsert player", err)
		if errRoll := txn.Rollback(); errRoll != nil {
			s.Logger.Error("Failed to rollback UpsertPlayer txn", errRoll)
			return errRoll
		}
		return err
	}
	if errCommit := txn.Commit(); errCommit != nil {
		s.Logger.Error("Failed to Commit UpsertPlayer txn", errCommit)
		return errCommit
	}
	s.Logger.Debug(fmt.Sprintf("Player %s recorded as %q", playerId, displayName))
	return nil
}

func (s *SqliteStore) GetPlayerById(playerId string) *Player {
	sql := `SELECT player_id, display_name, last_seen FROM players WHERE player_id = ?;`
	player := &Player{}
	if err := s.Conn.Get(player, sql, playerId); err != nil {
		s.Logger.Debug(fmt.Sprintf("Player %s not found: %s", playerId, err.Error()))
		return nil
	}
	return player
}

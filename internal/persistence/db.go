// Package persistence provides SQLite-based snapshots of a running simulation.
// The land is never stored: it is regenerated from the seed on load.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/longterm/internal/agents"
	"github.com/talgya/longterm/internal/engine"
)

// ErrNoSnapshot is returned by LoadWorldState when nothing has been saved.
var ErrNoSnapshot = errors.New("no saved world state")

// ErrSnapshotMismatch is returned when a snapshot was taken from a differently
// configured world.
var ErrSnapshotMismatch = errors.New("snapshot does not match simulation config")

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// OpenExisting opens a database that must already exist on disk. A missing
// file is ErrNoSnapshot and is not created.
func OpenExisting(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return nil, fmt.Errorf("open db: %w", err)
	}
	return Open(path)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS beings (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		alive INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		energy REAL NOT NULL,
		hunger REAL NOT NULL,
		fatigue REAL NOT NULL,
		sociability REAL NOT NULL,
		sex_drive REAL NOT NULL,
		affect_pos REAL NOT NULL,
		affect_neg REAL NOT NULL,
		last_food_x INTEGER NOT NULL,
		last_food_y INTEGER NOT NULL,
		tribe INTEGER NOT NULL,
		age INTEGER NOT NULL,
		hunger_urgency REAL NOT NULL,
		fatigue_urgency REAL NOT NULL,
		last_action INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_beings_alive ON beings(alive);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// beingRow is the flat column layout of one being.
type beingRow struct {
	ID             int     `db:"id"`
	Name           string  `db:"name"`
	Alive          bool    `db:"alive"`
	X              int     `db:"x"`
	Y              int     `db:"y"`
	Energy         float64 `db:"energy"`
	Hunger         float64 `db:"hunger"`
	Fatigue        float64 `db:"fatigue"`
	Sociability    float64 `db:"sociability"`
	SexDrive       float64 `db:"sex_drive"`
	AffectPos      float64 `db:"affect_pos"`
	AffectNeg      float64 `db:"affect_neg"`
	LastFoodX      int     `db:"last_food_x"`
	LastFoodY      int     `db:"last_food_y"`
	Tribe          int     `db:"tribe"`
	Age            int64   `db:"age"`
	HungerUrgency  float64 `db:"hunger_urgency"`
	FatigueUrgency float64 `db:"fatigue_urgency"`
	LastAction     uint8   `db:"last_action"`
}

func toRow(a *agents.Agent) beingRow {
	return beingRow{
		ID:             int(a.ID),
		Name:           a.Name,
		Alive:          a.Alive,
		X:              a.X,
		Y:              a.Y,
		Energy:         a.Energy,
		Hunger:         a.Hunger,
		Fatigue:        a.Fatigue,
		Sociability:    a.Sociability,
		SexDrive:       a.SexDrive,
		AffectPos:      a.AffectPos,
		AffectNeg:      a.AffectNeg,
		LastFoodX:      a.LastFoodX,
		LastFoodY:      a.LastFoodY,
		Tribe:          a.Tribe,
		Age:            int64(a.Age),
		HungerUrgency:  a.Drive.HungerUrgency,
		FatigueUrgency: a.Drive.FatigueUrgency,
		LastAction:     uint8(a.LastAction),
	}
}

func (r beingRow) agent() *agents.Agent {
	return &agents.Agent{
		ID:          agents.AgentID(r.ID),
		Name:        r.Name,
		Alive:       r.Alive,
		X:           r.X,
		Y:           r.Y,
		Energy:      r.Energy,
		Hunger:      r.Hunger,
		Fatigue:     r.Fatigue,
		Sociability: r.Sociability,
		SexDrive:    r.SexDrive,
		AffectPos:   r.AffectPos,
		AffectNeg:   r.AffectNeg,
		LastFoodX:   r.LastFoodX,
		LastFoodY:   r.LastFoodY,
		Tribe:       r.Tribe,
		Age:         uint64(r.Age),
		Drive: agents.DriveSnapshot{
			HungerUrgency:  r.HungerUrgency,
			FatigueUrgency: r.FatigueUrgency,
		},
		LastAction: agents.ActionKind(r.LastAction),
	}
}

// withTx runs fn in one transaction, committing only if it succeeds.
func (db *DB) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveAgents writes all beings to the database (full replace).
func (db *DB) SaveAgents(agentList []*agents.Agent) error {
	return db.withTx(func(tx *sqlx.Tx) error {
		return saveAgents(tx, agentList)
	})
}

func saveAgents(tx *sqlx.Tx, agentList []*agents.Agent) error {
	if _, err := tx.Exec("DELETE FROM beings"); err != nil {
		return err
	}

	stmt, err := tx.PrepareNamed(`INSERT INTO beings
		(id, name, alive, x, y, energy, hunger, fatigue, sociability, sex_drive,
		 affect_pos, affect_neg, last_food_x, last_food_y, tribe, age,
		 hunger_urgency, fatigue_urgency, last_action)
		VALUES (:id, :name, :alive, :x, :y, :energy, :hunger, :fatigue, :sociability, :sex_drive,
		 :affect_pos, :affect_neg, :last_food_x, :last_food_y, :tribe, :age,
		 :hunger_urgency, :fatigue_urgency, :last_action)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range agentList {
		if _, err := stmt.Exec(toRow(a)); err != nil {
			return fmt.Errorf("insert being %d: %w", a.ID, err)
		}
	}
	return nil
}

// LoadAgents reads every being back in id order.
func (db *DB) LoadAgents() ([]*agents.Agent, error) {
	var rows []beingRow
	if err := db.conn.Select(&rows, "SELECT * FROM beings ORDER BY id"); err != nil {
		return nil, err
	}
	out := make([]*agents.Agent, len(rows))
	for i, r := range rows {
		out[i] = r.agent()
	}
	return out, nil
}

// SaveEvents replaces the stored event log.
func (db *DB) SaveEvents(events []engine.Event) error {
	return db.withTx(func(tx *sqlx.Tx) error {
		return saveEvents(tx, events)
	})
}

func saveEvents(tx *sqlx.Tx, events []engine.Event) error {
	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		return err
	}
	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	return saveMeta(db.conn, key, value)
}

func saveMeta(ex sqlx.Execer, key, value string) error {
	_, err := ex.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasWorldState reports whether a snapshot has been saved.
func (db *DB) HasWorldState() bool {
	_, err := db.GetMeta("last_tick")
	return err == nil
}

// SaveWorldState performs a full save of all world state. Beings, events and
// metadata are written in one transaction, so a failed save leaves the
// previous snapshot intact.
func (db *DB) SaveWorldState(sim *engine.Simulation) error {
	slog.Info("saving world state", "beings", len(sim.Agents), "tick", sim.CurrentTick())

	cfg := sim.Config
	meta := map[string]string{
		"last_tick":  strconv.FormatUint(sim.CurrentTick(), 10),
		"seed":       strconv.FormatInt(cfg.World.Seed, 10),
		"width":      strconv.Itoa(cfg.World.Width),
		"height":     strconv.Itoa(cfg.World.Height),
		"noise":      string(cfg.World.Noise),
		"population": strconv.Itoa(cfg.Population),
		"run_id":     sim.RunID,
	}

	err := db.withTx(func(tx *sqlx.Tx) error {
		if err := saveAgents(tx, sim.Agents); err != nil {
			return fmt.Errorf("save beings: %w", err)
		}
		if err := saveEvents(tx, sim.Events); err != nil {
			return fmt.Errorf("save events: %w", err)
		}
		for k, v := range meta {
			if err := saveMeta(tx, k, v); err != nil {
				return fmt.Errorf("save meta %s: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("world state saved")
	return nil
}

// LoadWorldState restores population, tick and events into sim. The snapshot
// must come from a world with the same seed, dimensions and noise source.
func (db *DB) LoadWorldState(sim *engine.Simulation) error {
	tickStr, err := db.GetMeta("last_tick")
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoSnapshot
	}
	if err != nil {
		return fmt.Errorf("read meta: %w", err)
	}
	tick, err := strconv.ParseUint(tickStr, 10, 64)
	if err != nil {
		return fmt.Errorf("parse last_tick %q: %w", tickStr, err)
	}

	cfg := sim.Config
	want := map[string]string{
		"seed":   strconv.FormatInt(cfg.World.Seed, 10),
		"width":  strconv.Itoa(cfg.World.Width),
		"height": strconv.Itoa(cfg.World.Height),
		"noise":  string(cfg.World.Noise),
	}
	for k, v := range want {
		got, err := db.GetMeta(k)
		if err != nil {
			return fmt.Errorf("read meta %s: %w", k, err)
		}
		if got != v {
			return fmt.Errorf("%w: %s is %s, simulation has %s", ErrSnapshotMismatch, k, got, v)
		}
	}

	beings, err := db.LoadAgents()
	if err != nil {
		return fmt.Errorf("load beings: %w", err)
	}
	events, err := db.RecentEvents(engine.MaxEvents)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	// RecentEvents is newest first; the log is oldest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	sim.Restore(tick, beings)
	sim.Events = events

	slog.Info("world state restored", "beings", len(beings), "tick", tick)
	return nil
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

// SQLiteCollectionRepository implements CollectionRepository.
type SQLiteCollectionRepository struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewSQLiteCollectionRepository(db *sql.DB, collector *metrics.Collector) *SQLiteCollectionRepository {
	return &SQLiteCollectionRepository{db: db, metrics: collector}
}

func (r *SQLiteCollectionRepository) SaveAll(ctx context.Context, cards []CollectionCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin collection save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection`); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO collection (card_id, owned_standard, owned_golden) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.ExecContext(ctx, c.CardID, c.OwnedStandard, c.OwnedGolden); err != nil {
			r.metrics.RecordDBWrite(err)
			return fmt.Errorf("failed to save card %s: %w", c.CardID, err)
		}
	}
	err = tx.Commit()
	r.metrics.RecordDBWrite(err)
	return err
}

func (r *SQLiteCollectionRepository) GetAll(ctx context.Context) ([]CollectionCard, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT card_id, owned_standard, owned_golden FROM collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []CollectionCard
	for rows.Next() {
		var c CollectionCard
		if err := rows.Scan(&c.CardID, &c.OwnedStandard, &c.OwnedGolden); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteCollectionRepository) OwnedCount(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(owned_standard + owned_golden), 0) FROM collection`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SQLitePackRepository implements PackRepository.
type SQLitePackRepository struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewSQLitePackRepository(db *sql.DB, collector *metrics.Collector) *SQLitePackRepository {
	return &SQLitePackRepository{db: db, metrics: collector}
}

func (r *SQLitePackRepository) Save(ctx context.Context, pack Pack) error {
	cardIDs, err := json.Marshal(pack.CardIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal pack cards: %w", err)
	}
	rarities, err := json.Marshal(pack.Rarities)
	if err != nil {
		return fmt.Errorf("failed to marshal pack rarities: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO packs (id, set_id, opened_at, card_ids_json, rarities_json) VALUES (?, ?, ?, ?, ?)`,
		pack.ID, pack.SetID, pack.OpenedAt, string(cardIDs), string(rarities),
	)
	r.metrics.RecordDBWrite(err)
	if err != nil {
		return fmt.Errorf("failed to save pack: %w", err)
	}
	return nil
}

func (r *SQLitePackRepository) GetAll(ctx context.Context) ([]Pack, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, set_id, opened_at, card_ids_json, rarities_json FROM packs ORDER BY opened_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packs []Pack
	for rows.Next() {
		var p Pack
		var cardIDs, rarities string
		if err := rows.Scan(&p.ID, &p.SetID, &p.OpenedAt, &cardIDs, &rarities); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cardIDs), &p.CardIDs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rarities), &p.Rarities); err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return packs, rows.Err()
}

func (r *SQLitePackRepository) Count(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packs`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SQLitePityTimerRepository implements PityTimerRepository.
type SQLitePityTimerRepository struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewSQLitePityTimerRepository(db *sql.DB, collector *metrics.Collector) *SQLitePityTimerRepository {
	return &SQLitePityTimerRepository{db: db, metrics: collector}
}

func (r *SQLitePityTimerRepository) Get(ctx context.Context, setID string) (PityTimer, bool, error) {
	var t PityTimer
	row := r.db.QueryRowContext(ctx,
		`SELECT set_id, packs_since_epic, packs_since_legendary FROM pity_timers WHERE set_id = ?`, setID)
	err := row.Scan(&t.SetID, &t.PacksSinceEpic, &t.PacksSinceLegendary)
	if errors.Is(err, sql.ErrNoRows) {
		return PityTimer{SetID: setID}, false, nil
	}
	if err != nil {
		return PityTimer{}, false, err
	}
	return t, true, nil
}

func (r *SQLitePityTimerRepository) Save(ctx context.Context, timer PityTimer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pity_timers (set_id, packs_since_epic, packs_since_legendary) VALUES (?, ?, ?)
		 ON CONFLICT(set_id) DO UPDATE SET packs_since_epic = excluded.packs_since_epic,
		 packs_since_legendary = excluded.packs_since_legendary`,
		timer.SetID, timer.PacksSinceEpic, timer.PacksSinceLegendary,
	)
	r.metrics.RecordDBWrite(err)
	if err != nil {
		return fmt.Errorf("failed to save pity timer for %s: %w", timer.SetID, err)
	}
	return nil
}

func (r *SQLitePityTimerRepository) GetAll(ctx context.Context) ([]PityTimer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT set_id, packs_since_epic, packs_since_legendary FROM pity_timers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timers []PityTimer
	for rows.Next() {
		var t PityTimer
		if err := rows.Scan(&t.SetID, &t.PacksSinceEpic, &t.PacksSinceLegendary); err != nil {
			return nil, err
		}
		timers = append(timers, t)
	}
	return timers, rows.Err()
}

// SQLitePreferencesRepository stores the preferences document as a single
// JSON row.
type SQLitePreferencesRepository struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewSQLitePreferencesRepository(db *sql.DB, collector *metrics.Collector) *SQLitePreferencesRepository {
	return &SQLitePreferencesRepository{db: db, metrics: collector}
}

func (r *SQLitePreferencesRepository) Load(ctx context.Context) (preferences.Preferences, bool, error) {
	var document string
	row := r.db.QueryRowContext(ctx, `SELECT document FROM preferences WHERE id = 1`)
	err := row.Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return preferences.Preferences{}, false, nil
	}
	if err != nil {
		return preferences.Preferences{}, false, err
	}
	var prefs preferences.Preferences
	if err := json.Unmarshal([]byte(document), &prefs); err != nil {
		return preferences.Preferences{}, false, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, true, nil
}

func (r *SQLitePreferencesRepository) Save(ctx context.Context, prefs preferences.Preferences) error {
	document, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO preferences (id, document, last_updated) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, last_updated = CURRENT_TIMESTAMP`,
		string(document),
	)
	r.metrics.RecordDBWrite(err)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// SQLiteEventRepository implements EventRepository.
type SQLiteEventRepository struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewSQLiteEventRepository(db *sql.DB, collector *metrics.Collector) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db, metrics: collector}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event events.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO game_events (id, timestamp, event_type, payload) VALUES (?, ?, ?, ?)`,
		event.ID, event.Timestamp, string(event.Type), string(payload),
	)
	r.metrics.RecordDBWrite(err)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) GetSince(ctx context.Context, since int) ([]events.GameEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM game_events WHERE seq > ? ORDER BY seq ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.GameEvent
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var ev events.GameEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *SQLiteEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_events`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

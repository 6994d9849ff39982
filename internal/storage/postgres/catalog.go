package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/content"
)

// ErrMoveNotFound is returned when a move lookup yields no results.
var ErrMoveNotFound = errors.New("move not found")

// ErrSpeciesNotFound is returned when a species lookup yields no results.
var ErrSpeciesNotFound = errors.New("species not found")

// CatalogRepository persists the move and species catalog. Effect lists are
// stored as JSONB; the enum payloads round-trip through their integer values.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a CatalogRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// UpsertMove inserts m or replaces the row with the same ID.
//
// Precondition: m must pass content.Move.Validate.
func (r *CatalogRepository) UpsertMove(ctx context.Context, m content.Move) error {
	effects, err := json.Marshal(m.Effects)
	if err != nil {
		return fmt.Errorf("encoding effects for move %q: %w", m.ID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO moves
			(id, name, type, category, power, accuracy, pp, priority, makes_contact, effects)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, type = EXCLUDED.type, category = EXCLUDED.category,
			power = EXCLUDED.power, accuracy = EXCLUDED.accuracy, pp = EXCLUDED.pp,
			priority = EXCLUDED.priority, makes_contact = EXCLUDED.makes_contact,
			effects = EXCLUDED.effects, updated_at = NOW()`,
		m.ID, m.Name, int(m.Type), int(m.Category), m.Power, m.Accuracy, m.PP,
		m.Priority, m.MakesContact, effects,
	)
	if err != nil {
		return fmt.Errorf("upserting move %q: %w", m.ID, err)
	}
	return nil
}

// UpsertSpecies inserts s or replaces the row with the same ID.
//
// Precondition: s must pass content.Species.Validate.
func (r *CatalogRepository) UpsertSpecies(ctx context.Context, s content.Species) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO species
			(id, name, primary_type, secondary_type,
			 hp, attack, defense, sp_attack, sp_defense, speed,
			 abilities, moves)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			primary_type = EXCLUDED.primary_type, secondary_type = EXCLUDED.secondary_type,
			hp = EXCLUDED.hp, attack = EXCLUDED.attack, defense = EXCLUDED.defense,
			sp_attack = EXCLUDED.sp_attack, sp_defense = EXCLUDED.sp_defense,
			speed = EXCLUDED.speed,
			abilities = EXCLUDED.abilities, moves = EXCLUDED.moves, updated_at = NOW()`,
		s.ID, s.Name, int(s.PrimaryType), int(s.SecondaryType),
		s.Stats.HP, s.Stats.Attack, s.Stats.Defense,
		s.Stats.SpAttack, s.Stats.SpDefense, s.Stats.Speed,
		s.Abilities, s.LearnableMove,
	)
	if err != nil {
		return fmt.Errorf("upserting species %q: %w", s.ID, err)
	}
	return nil
}

const moveColumns = `id, name, type, category, power, accuracy, pp, priority, makes_contact, effects`

func scanMove(row pgx.Row) (content.Move, error) {
	var (
		m        content.Move
		typ, cat int
		effects  []byte
	)
	err := row.Scan(&m.ID, &m.Name, &typ, &cat, &m.Power, &m.Accuracy, &m.PP,
		&m.Priority, &m.MakesContact, &effects)
	if err != nil {
		return content.Move{}, err
	}
	m.Type = content.Type(typ)
	m.Category = content.Category(cat)
	if len(effects) > 0 {
		if err := json.Unmarshal(effects, &m.Effects); err != nil {
			return content.Move{}, fmt.Errorf("decoding effects for move %q: %w", m.ID, err)
		}
	}
	return m, nil
}

// GetMove retrieves one move by ID.
//
// Postcondition: Returns the Move or ErrMoveNotFound.
func (r *CatalogRepository) GetMove(ctx context.Context, id string) (content.Move, error) {
	m, err := scanMove(r.db.QueryRow(ctx,
		`SELECT `+moveColumns+` FROM moves WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return content.Move{}, ErrMoveNotFound
		}
		return content.Move{}, fmt.Errorf("querying move: %w", err)
	}
	return m, nil
}

// ListMoves returns every move, ordered by ID.
func (r *CatalogRepository) ListMoves(ctx context.Context) ([]content.Move, error) {
	rows, err := r.db.Query(ctx, `SELECT `+moveColumns+` FROM moves ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing moves: %w", err)
	}
	defer rows.Close()

	moves := make([]content.Move, 0)
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning move row: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

const speciesColumns = `id, name, primary_type, secondary_type,
	hp, attack, defense, sp_attack, sp_defense, speed, abilities, moves`

func scanSpecies(row pgx.Row) (content.Species, error) {
	var (
		s      content.Species
		pt, st int
	)
	err := row.Scan(&s.ID, &s.Name, &pt, &st,
		&s.Stats.HP, &s.Stats.Attack, &s.Stats.Defense,
		&s.Stats.SpAttack, &s.Stats.SpDefense, &s.Stats.Speed,
		&s.Abilities, &s.LearnableMove)
	if err != nil {
		return content.Species{}, err
	}
	s.PrimaryType = content.Type(pt)
	s.SecondaryType = content.Type(st)
	return s, nil
}

// GetSpecies retrieves one species by ID.
//
// Postcondition: Returns the Species or ErrSpeciesNotFound.
func (r *CatalogRepository) GetSpecies(ctx context.Context, id string) (content.Species, error) {
	s, err := scanSpecies(r.db.QueryRow(ctx,
		`SELECT `+speciesColumns+` FROM species WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return content.Species{}, ErrSpeciesNotFound
		}
		return content.Species{}, fmt.Errorf("querying species: %w", err)
	}
	return s, nil
}

// ListSpecies returns every species, ordered by ID.
func (r *CatalogRepository) ListSpecies(ctx context.Context) ([]content.Species, error) {
	rows, err := r.db.Query(ctx, `SELECT `+speciesColumns+` FROM species ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing species: %w", err)
	}
	defer rows.Close()

	out := make([]content.Species, 0)
	for rows.Next() {
		s, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning species row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadRegistry reads the full catalog into an in-memory content.Registry.
// The battle engine does synchronous lookups, so the database is read once
// at startup rather than per query.
//
// Postcondition: Returns a Registry whose entries all pass validation.
func (r *CatalogRepository) LoadRegistry(ctx context.Context) (*content.Registry, error) {
	reg := content.NewRegistry()

	moves, err := r.ListMoves(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("stored move failed validation: %w", err)
		}
		reg.RegisterMove(m)
	}

	species, err := r.ListSpecies(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range species {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("stored species failed validation: %w", err)
		}
		reg.RegisterSpecies(s)
	}
	return reg, nil
}

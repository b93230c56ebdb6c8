package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/identity/model"
)

// postgresRepository implements Repository on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, username, password_hash, created_at, updated_at
    `

	var created model.User
	err := r.pool.QueryRow(ctx, query, u.Username, u.PasswordHash).Scan(
		&created.ID,
		&created.Username,
		&created.PasswordHash,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
        SELECT id, username, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	return r.getUser(ctx, query, id)
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
        SELECT id, username, password_hash, created_at, updated_at
        FROM users
        WHERE username = $1
    `
	return r.getUser(ctx, query, username)
}

func (r *postgresRepository) getUser(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.loadGroups(ctx, &u); err != nil {
		return nil, err
	}
	if err := r.loadDirectPermissions(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) loadGroups(ctx context.Context, u *model.User) error {
	query := `
        SELECT g.id, g.name, COALESCE(array_agg(gp.codename) FILTER (WHERE gp.codename IS NOT NULL), '{}')
        FROM groups g
        JOIN user_groups ug ON ug.group_id = g.id
        LEFT JOIN group_permissions gp ON gp.group_id = g.id
        WHERE ug.user_id = $1
        GROUP BY g.id, g.name
        ORDER BY g.name
    `

	rows, err := r.pool.Query(ctx, query, u.ID)
	if err != nil {
		return fmt.Errorf("failed to load user groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Permissions); err != nil {
			return fmt.Errorf("failed to scan group: %w", err)
		}
		u.Groups = append(u.Groups, g)
	}
	return rows.Err()
}

func (r *postgresRepository) loadDirectPermissions(ctx context.Context, u *model.User) error {
	query := `SELECT codename FROM user_permissions WHERE user_id = $1 ORDER BY codename`

	rows, err := r.pool.Query(ctx, query, u.ID)
	if err != nil {
		return fmt.Errorf("failed to load user permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return fmt.Errorf("failed to scan permission: %w", err)
		}
		u.Permissions = append(u.Permissions, codename)
	}
	return rows.Err()
}

func (r *postgresRepository) AddUserToGroup(ctx context.Context, userID uuid.UUID, groupName string) error {
	group, err := r.GetGroup(ctx, groupName)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO user_groups (user_id, group_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	if _, err := r.pool.Exec(ctx, query, userID, group.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return model.ErrUserNotFound
		}
		return fmt.Errorf("failed to add user to group: %w", err)
	}
	return nil
}

func (r *postgresRepository) EnsureGroup(ctx context.Context, name string, permissions []string) (*model.Group, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var g model.Group
	inserted := true
	err = tx.QueryRow(ctx, `
        INSERT INTO groups (name)
        VALUES ($1)
        ON CONFLICT (name) DO NOTHING
        RETURNING id, name
    `, name).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		// Group already exists; leave its permission set alone.
		inserted = false
		err = tx.QueryRow(ctx, `SELECT id, name FROM groups WHERE name = $1`, name).Scan(&g.ID, &g.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to ensure group: %w", err)
	}

	if inserted {
		for _, codename := range permissions {
			if _, err := tx.Exec(ctx, `
                INSERT INTO group_permissions (group_id, codename)
                VALUES ($1, $2)
                ON CONFLICT DO NOTHING
            `, g.ID, codename); err != nil {
				return nil, fmt.Errorf("failed to assign permission %s: %w", codename, err)
			}
		}
		g.Permissions = permissions
	} else {
		rows, err := tx.Query(ctx, `SELECT codename FROM group_permissions WHERE group_id = $1 ORDER BY codename`, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load group permissions: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var codename string
			if err := rows.Scan(&codename); err != nil {
				return nil, fmt.Errorf("failed to scan permission: %w", err)
			}
			g.Permissions = append(g.Permissions, codename)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit group bootstrap: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) GetGroup(ctx context.Context, name string) (*model.Group, error) {
	query := `
        SELECT g.id, g.name, COALESCE(array_agg(gp.codename) FILTER (WHERE gp.codename IS NOT NULL), '{}')
        FROM groups g
        LEFT JOIN group_permissions gp ON gp.group_id = g.id
        WHERE g.name = $1
        GROUP BY g.id, g.name
    `

	var g model.Group
	err := r.pool.QueryRow(ctx, query, name).Scan(&g.ID, &g.Name, &g.Permissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error)
	ListExcluding(ctx context.Context, requesterID string, limit, offset int) ([]*ItemRequest, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.requests").
		Columns("description", "requester_id", "created").
		Values(req.Description, req.RequesterID, req.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&req.ID); err != nil {
		if mapped := apperror.FromDB(err); errors.Is(mapped, apperror.ErrDataIntegrity) {
			return mapped
		}
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requester_id", "created").
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req ItemRequest
	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "description", "requester_id", "created").
		From("public.requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created DESC", "id ASC")

	return r.list(ctx, query)
}

func (r *pgxRepository) ListExcluding(ctx context.Context, requesterID string, limit, offset int) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "description", "requester_id", "created").
		From("public.requests").
		Where(squirrel.NotEq{"requester_id": requesterID}).
		OrderBy("created DESC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.list(ctx, query)
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*ItemRequest, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	result := make([]*ItemRequest, 0)
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		result = append(result, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	return result, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mwantia/vsh/data"
)

const selectColumns = "SELECT id, path, name, kind, attributes, create_time, modify_time FROM vsh_objects"

func (pb *PostgresBackend) PutObject(ctx context.Context, obj *data.Object) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	attributes, err := json.Marshal(obj.Attributes)
	if err != nil {
		return err
	}

	_, err = pb.pool.Exec(ctx, `
		INSERT INTO vsh_objects (id, path, parent, name, kind, attributes, create_time, modify_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (path) DO UPDATE SET
			id = EXCLUDED.id,
			parent = EXCLUDED.parent,
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			attributes = EXCLUDED.attributes,
			create_time = EXCLUDED.create_time,
			modify_time = EXCLUDED.modify_time`,
		obj.ID, obj.Path, obj.Parent(), obj.Name, string(obj.Kind), string(attributes),
		obj.CreateTime.UnixNano(), obj.ModifyTime.UnixNano())

	return err
}

func (pb *PostgresBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	row := pb.pool.QueryRow(ctx, selectColumns+" WHERE path = $1", path)

	obj, err := scanObject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, data.ErrNotExist
	}

	return obj, err
}

func (pb *PostgresBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	rows, err := pb.pool.Query(ctx, selectColumns+" WHERE parent = $1 AND path <> '' ORDER BY path", parent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make([]*data.Object, 0)
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, obj)
	}

	return children, rows.Err()
}

func (pb *PostgresBackend) DeleteObject(ctx context.Context, path string) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	tag, err := pb.pool.Exec(ctx, "DELETE FROM vsh_objects WHERE path = $1", path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return data.ErrNotExist
	}

	return nil
}

func scanObject(row pgx.Row) (*data.Object, error) {
	var (
		obj        data.Object
		kind       string
		attributes []byte
		createTime int64
		modifyTime int64
	)

	if err := row.Scan(&obj.ID, &obj.Path, &obj.Name, &kind, &attributes, &createTime, &modifyTime); err != nil {
		return nil, err
	}

	obj.Kind = data.Kind(kind)
	obj.CreateTime = time.Unix(0, createTime)
	obj.ModifyTime = time.Unix(0, modifyTime)

	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &obj.Attributes); err != nil {
			return nil, err
		}
	}

	return &obj, nil
}

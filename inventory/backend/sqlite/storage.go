package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mwantia/vsh/data"
)

const selectColumns = "SELECT id, path, name, kind, attributes, create_time, modify_time FROM vsh_objects"

func (sb *SQLiteBackend) PutObject(ctx context.Context, obj *data.Object) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	attributes, err := json.Marshal(obj.Attributes)
	if err != nil {
		return err
	}

	_, err = sb.db.ExecContext(ctx, `
		INSERT INTO vsh_objects (id, path, parent, name, kind, attributes, create_time, modify_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			parent = excluded.parent,
			name = excluded.name,
			kind = excluded.kind,
			attributes = excluded.attributes,
			create_time = excluded.create_time,
			modify_time = excluded.modify_time`,
		obj.ID, obj.Path, obj.Parent(), obj.Name, string(obj.Kind), string(attributes),
		obj.CreateTime.UnixNano(), obj.ModifyTime.UnixNano())

	return err
}

func (sb *SQLiteBackend) ReadObject(ctx context.Context, path string) (*data.Object, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	row := sb.db.QueryRowContext(ctx, selectColumns+" WHERE path = ?", path)

	obj, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.ErrNotExist
	}

	return obj, err
}

func (sb *SQLiteBackend) ListObjects(ctx context.Context, parent string) ([]*data.Object, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	rows, err := sb.db.QueryContext(ctx, selectColumns+" WHERE parent = ? AND path != '' ORDER BY path", parent)
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

func (sb *SQLiteBackend) DeleteObject(ctx context.Context, path string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	result, err := sb.db.ExecContext(ctx, "DELETE FROM vsh_objects WHERE path = ?", path)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return data.ErrNotExist
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanObject(row scanner) (*data.Object, error) {
	var (
		obj        data.Object
		kind       string
		attributes sql.NullString
		createTime int64
		modifyTime int64
	)

	if err := row.Scan(&obj.ID, &obj.Path, &obj.Name, &kind, &attributes, &createTime, &modifyTime); err != nil {
		return nil, err
	}

	obj.Kind = data.Kind(kind)
	obj.CreateTime = time.Unix(0, createTime)
	obj.ModifyTime = time.Unix(0, modifyTime)

	if attributes.Valid && attributes.String != "" {
		if err := json.Unmarshal([]byte(attributes.String), &obj.Attributes); err != nil {
			return nil, err
		}
	}

	return &obj, nil
}

// Package store persists generated datasets in sqlite so a session can reload them.
package store

import "context"
import "database/sql"
import "encoding/hex"
import "time"

import "github.com/google/uuid"
import "github.com/pkg/errors"
import _ "modernc.org/sqlite"

import "github.com/neurlang/blobcount/datasets/blobs"

// ErrNotFound is returned for an unknown dataset id.
var ErrNotFound = errors.New("store: dataset not found")

type Store struct {
	db *sql.DB
}

// Info describes one stored dataset.
type Info struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Created      time.Time `json:"created"`
	GridSize     int       `json:"grid_size"`
	AllowOverlap bool      `json:"allow_overlap"`
	Samples      int       `json:"samples"`
	Digest       string    `json:"digest"`
}

// Open opens or creates the sqlite database at path and migrates it to the latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// one connection keeps transactions and pragmas on the same handle
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, pragma)
		}
	}
	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores d in generation order and returns the new dataset id.
func (s *Store) Save(ctx context.Context, d blobs.Dataslice, allowOverlap bool) (string, error) {
	return s.SaveNamed(ctx, "", d, allowOverlap)
}

// SaveNamed is Save with a human readable name.
func (s *Store) SaveNamed(ctx context.Context, name string, d blobs.Dataslice, allowOverlap bool) (string, error) {
	id := uuid.NewString()
	var size int
	if d.Len() > 0 {
		size = d.Get(0).Grid.Size()
	}
	digest := d.Digest()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO datasets
		(dataset_id, name, created_unix, grid_size, allow_overlap, sample_count, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, time.Now().UnixMilli(), size, allowOverlap, d.Len(), hex.EncodeToString(digest[:]))
	if err != nil {
		return "", errors.Wrap(err, "insert dataset")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples (dataset_id, position, label, cells) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", errors.Wrap(err, "prepare sample insert")
	}
	defer stmt.Close()
	for i, sample := range d {
		if _, err := stmt.ExecContext(ctx, id, i, sample.Label, sample.Grid.Pack()); err != nil {
			return "", errors.Wrapf(err, "insert sample %d", i)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit")
	}
	return id, nil
}

func scanInfo(row interface{ Scan(...any) error }) (i Info, err error) {
	var created int64
	err = row.Scan(&i.ID, &i.Name, &created, &i.GridSize, &i.AllowOverlap, &i.Samples, &i.Digest)
	i.Created = time.UnixMilli(created).UTC()
	return
}

const infoColumns = `dataset_id, name, created_unix, grid_size, allow_overlap, sample_count, digest`

// Get returns the description of dataset id.
func (s *Store) Get(ctx context.Context, id string) (Info, error) {
	i, err := scanInfo(s.db.QueryRowContext(ctx, `SELECT `+infoColumns+` FROM datasets WHERE dataset_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, errors.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return Info{}, errors.Wrap(err, "select dataset")
	}
	return i, nil
}

// Load returns the samples of dataset id in generation order.
func (s *Store) Load(ctx context.Context, id string) (blobs.Dataslice, Info, error) {
	info, err := s.Get(ctx, id)
	if err != nil {
		return nil, info, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT label, cells FROM samples WHERE dataset_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, info, errors.Wrap(err, "select samples")
	}
	defer rows.Close()

	d := make(blobs.Dataslice, 0, info.Samples)
	for rows.Next() {
		var label int
		var cells []byte
		if err := rows.Scan(&label, &cells); err != nil {
			return nil, info, errors.Wrap(err, "scan sample")
		}
		d = append(d, blobs.Sample{Grid: blobs.Unpack(info.GridSize, cells), Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, info, errors.Wrap(err, "iterate samples")
	}
	if len(d) != info.Samples {
		return nil, info, errors.Errorf("store: dataset %s has %d of %d samples", id, len(d), info.Samples)
	}
	return d, info, nil
}

// List returns every stored dataset, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+infoColumns+` FROM datasets ORDER BY created_unix DESC, dataset_id`)
	if err != nil {
		return nil, errors.Wrap(err, "select datasets")
	}
	defer rows.Close()
	var o []Info
	for rows.Next() {
		i, err := scanInfo(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan dataset")
		}
		o = append(o, i)
	}
	return o, errors.Wrap(rows.Err(), "iterate datasets")
}

// Delete removes dataset id and its samples.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM samples WHERE dataset_id = ?`, id); err != nil {
		return errors.Wrap(err, "delete samples")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE dataset_id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete dataset")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete dataset")
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	return errors.Wrap(tx.Commit(), "commit")
}

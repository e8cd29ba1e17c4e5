// Package datarecording stores simulation records in SQLite tables.
//
// Entries are flat structs; each exported field becomes a column. Inserted
// entries are buffered and written in one transaction per flush.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers an entry for a table created before. Inserting
	// into an unknown table panics.
	InsertData(tableName string, entry any) error

	// ListTables returns the table names in creation order.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush() error

	// Close flushes and closes the database.
	Close() error
}

const defaultBatchSize = 100000

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrFileExists is returned when the recording file is already present.
var ErrFileExists = errors.New("datarecording: file already exists")

// New creates a DataRecorder writing to path + ".sqlite3". An empty path
// picks a unique name. Existing files are never overwritten.
func New(path string) (DataRecorder, error) {
	if path == "" {
		path = "spikenet_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	w := newSQLiteWriter(db, filename)
	atexit.Register(func() { _ = w.Flush() })

	return w, nil
}

// NewWithDB creates a DataRecorder on an open database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := newSQLiteWriter(db, "")
	atexit.Register(func() { _ = w.Flush() })

	return w
}

func newSQLiteWriter(db *sql.DB, name string) *sqliteWriter {
	return &sqliteWriter{
		db:        db,
		dbName:    name,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}
}

type table struct {
	name       string
	structType reflect.Type
	columns    []string
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database.
type sqliteWriter struct {
	mu sync.Mutex

	db         *sql.DB
	dbName     string
	tables     map[string]*table
	tableOrder []*table
	batchSize  int
	entryCount int
	closed     bool
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func columnsOf(entry any) ([]string, error) {
	typ := reflect.TypeOf(entry)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("datarecording: entry must be a struct, got %T", entry)
	}

	columns := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			return nil, fmt.Errorf("datarecording: field %s of %s is not exported",
				field.Name, typ)
		}

		if !isAllowedKind(field.Type.Kind()) {
			return nil, fmt.Errorf("datarecording: field %s of %s has unsupported kind %s",
				field.Name, typ, field.Type.Kind())
		}

		columns = append(columns, field.Name)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("datarecording: %s has no fields", typ)
	}

	return columns, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) error {
	if !identifier.MatchString(tableName) {
		return fmt.Errorf("datarecording: invalid table name %q", tableName)
	}

	columns, err := columnsOf(sampleEntry)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.tables[tableName]; exists {
		return fmt.Errorf("datarecording: table %s already exists", tableName)
	}

	createTableSQL := "CREATE TABLE " + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);"
	if _, err := t.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("creating table %s: %w", tableName, err)
	}

	tbl := &table{
		name:       tableName,
		structType: reflect.TypeOf(sampleEntry),
		columns:    columns,
	}
	t.tables[tableName] = tbl
	t.tableOrder = append(t.tableOrder, tbl)

	return nil
}

func (t *sqliteWriter) InsertData(tableName string, entry any) error {
	t.mu.Lock()

	tbl, exists := t.tables[tableName]
	if !exists {
		t.mu.Unlock()
		panic(fmt.Sprintf("datarecording: table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != tbl.structType {
		t.mu.Unlock()
		return fmt.Errorf("datarecording: table %s expects %s, got %T",
			tableName, tbl.structType, entry)
	}

	tbl.entries = append(tbl.entries, entry)
	t.entryCount++
	full := t.entryCount >= t.batchSize

	t.mu.Unlock()

	if full {
		return t.Flush()
	}

	return nil
}

func (t *sqliteWriter) ListTables() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.tableOrder))
	for _, tbl := range t.tableOrder {
		names = append(names, tbl.name)
	}

	return names
}

func (t *sqliteWriter) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.flushLocked()
}

func (t *sqliteWriter) flushLocked() error {
	if t.entryCount == 0 || t.closed {
		return nil
	}

	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	for _, tbl := range t.tableOrder {
		if err := insertAll(tx, tbl); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	for _, tbl := range t.tableOrder {
		tbl.entries = nil
	}
	t.entryCount = 0

	return nil
}

func insertAll(tx *sql.Tx, tbl *table) error {
	if len(tbl.entries) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tbl.columns)), ", ")
	stmt, err := tx.Prepare(
		"INSERT INTO " + tbl.name + " VALUES (" + placeholders + ")")
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", tbl.name, err)
	}
	defer stmt.Close()

	values := make([]any, len(tbl.columns))
	for _, entry := range tbl.entries {
		v := reflect.ValueOf(entry)
		for i := range values {
			values[i] = v.Field(i).Interface()
		}

		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("inserting into %s: %w", tbl.name, err)
		}
	}

	return nil
}

func (t *sqliteWriter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	if err := t.flushLocked(); err != nil {
		return err
	}

	t.closed = true

	return t.db.Close()
}

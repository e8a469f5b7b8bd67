package ea

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Default shape for elements placed on a diagram. EA stores the vertical
// axis negated in t_diagramobjects, so RectTop = -y.
const (
	elementWidth  = 150
	elementHeight = 80

	// appendStep is the horizontal spacing used when the caller asks the
	// repo to position an element itself (negative coordinates).
	appendOriginX = 100
	appendOriginY = 100
	appendStep    = 200
)

// Repo is a Session backed by a .qea project file.
type Repo struct {
	db   *sql.DB
	path string
}

// Open opens an EA project file. When create is true a missing file is
// bootstrapped with the subset of EA's schema this server writes to, plus a
// root "Model" package to hang diagrams off. When create is false a missing
// file is an error; pointing the server at a typo'd path should not
// silently produce an empty model.
func Open(path string, create bool) (*Repo, error) {
	fresh := false
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("ea: stat project file: %w", err)
		}
		if !create {
			return nil, fmt.Errorf("ea: project file %s does not exist", path)
		}
		fresh = true
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ea: open project file: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ea: pragma %q: %w", p, err)
		}
	}

	r := &Repo{db: db, path: path}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ea: migration: %w", err)
	}
	if fresh {
		if err := r.seedRootPackage(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ea: seed root package: %w", err)
		}
	}

	return r, nil
}

// Close closes the underlying database connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Path returns the project file path this repo was opened with.
func (r *Repo) Path() string {
	return r.path
}

// migrate creates the EA tables this server touches. All statements are
// IF NOT EXISTS so opening an existing project file leaves it alone.
func (r *Repo) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS t_package (
			Package_ID   INTEGER PRIMARY KEY AUTOINCREMENT,
			Name         TEXT    NOT NULL,
			Parent_ID    INTEGER NOT NULL DEFAULT 0,
			ea_guid      TEXT    NOT NULL UNIQUE,
			CreatedDate  TEXT,
			ModifiedDate TEXT
		);

		CREATE TABLE IF NOT EXISTS t_diagram (
			Diagram_ID   INTEGER PRIMARY KEY AUTOINCREMENT,
			Package_ID   INTEGER NOT NULL,
			Diagram_Type TEXT    NOT NULL,
			Name         TEXT    NOT NULL,
			Version      TEXT    NOT NULL DEFAULT '1.0',
			ea_guid      TEXT    NOT NULL UNIQUE,
			CreatedDate  TEXT,
			ModifiedDate TEXT
		);

		CREATE TABLE IF NOT EXISTS t_object (
			Object_ID    INTEGER PRIMARY KEY AUTOINCREMENT,
			Object_Type  TEXT    NOT NULL,
			Name         TEXT    NOT NULL,
			Stereotype   TEXT,
			Package_ID   INTEGER NOT NULL,
			ea_guid      TEXT    NOT NULL UNIQUE,
			CreatedDate  TEXT,
			ModifiedDate TEXT
		);

		CREATE TABLE IF NOT EXISTS t_diagramobjects (
			Instance_ID INTEGER PRIMARY KEY AUTOINCREMENT,
			Diagram_ID  INTEGER NOT NULL,
			Object_ID   INTEGER NOT NULL,
			RectTop     INTEGER NOT NULL DEFAULT 0,
			RectLeft    INTEGER NOT NULL DEFAULT 0,
			RectRight   INTEGER NOT NULL DEFAULT 0,
			RectBottom  INTEGER NOT NULL DEFAULT 0,
			Sequence    INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS t_attribute (
			ID        INTEGER PRIMARY KEY AUTOINCREMENT,
			Object_ID INTEGER NOT NULL,
			Name      TEXT    NOT NULL,
			Pos       INTEGER NOT NULL DEFAULT 0,
			ea_guid   TEXT    NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS t_operation (
			OperationID INTEGER PRIMARY KEY AUTOINCREMENT,
			Object_ID   INTEGER NOT NULL,
			Name        TEXT    NOT NULL,
			Pos         INTEGER NOT NULL DEFAULT 0,
			ea_guid     TEXT    NOT NULL UNIQUE
		);

		CREATE INDEX IF NOT EXISTS idx_diagramobjects_diagram ON t_diagramobjects(Diagram_ID);
		CREATE INDEX IF NOT EXISTS idx_object_package ON t_object(Package_ID);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *Repo) seedRootPackage() error {
	now := timestamp()
	_, err := r.db.Exec(
		`INSERT INTO t_package (Name, Parent_ID, ea_guid, CreatedDate, ModifiedDate)
		 VALUES ('Model', 0, ?, ?, ?)`,
		NewGUID(), now, now,
	)
	return err
}

// CreateDiagram creates a diagram under the package addressed by
// packageGUID. The package must exist; nothing is created otherwise.
func (r *Repo) CreateDiagram(packageGUID, name, diagramType string) (DiagramRef, error) {
	var packageID int64
	err := r.db.QueryRow(
		`SELECT Package_ID FROM t_package WHERE ea_guid = ?`, packageGUID,
	).Scan(&packageID)
	if errors.Is(err, sql.ErrNoRows) {
		return DiagramRef{}, &NotFoundError{Kind: "package", GUID: packageGUID}
	}
	if err != nil {
		return DiagramRef{}, fmt.Errorf("ea: look up package: %w", err)
	}

	guid := NewGUID()
	now := timestamp()
	_, err = r.db.Exec(
		`INSERT INTO t_diagram (Package_ID, Diagram_Type, Name, ea_guid, CreatedDate, ModifiedDate)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		packageID, diagramType, name, guid, now, now,
	)
	if err != nil {
		return DiagramRef{}, fmt.Errorf("ea: insert diagram: %w", err)
	}

	return DiagramRef{GUID: guid, Name: name, Type: diagramType}, nil
}

// AddElement creates an element in the diagram's package and places it on
// the diagram. Negative coordinates append the element after the existing
// ones (see Session).
func (r *Repo) AddElement(diagramGUID, name, elementType, stereotype string, x, y int) (ElementRef, error) {
	var diagramID, packageID int64
	err := r.db.QueryRow(
		`SELECT Diagram_ID, Package_ID FROM t_diagram WHERE ea_guid = ?`, diagramGUID,
	).Scan(&diagramID, &packageID)
	if errors.Is(err, sql.ErrNoRows) {
		return ElementRef{}, &NotFoundError{Kind: "diagram", GUID: diagramGUID}
	}
	if err != nil {
		return ElementRef{}, fmt.Errorf("ea: look up diagram: %w", err)
	}

	var onDiagram int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM t_diagramobjects WHERE Diagram_ID = ?`, diagramID,
	).Scan(&onDiagram); err != nil {
		return ElementRef{}, fmt.Errorf("ea: count diagram objects: %w", err)
	}
	if x < 0 || y < 0 {
		x = appendOriginX + onDiagram*appendStep
		y = appendOriginY
	}

	tx, err := r.db.Begin()
	if err != nil {
		return ElementRef{}, fmt.Errorf("ea: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	guid := NewGUID()
	now := timestamp()
	res, err := tx.Exec(
		`INSERT INTO t_object (Object_Type, Name, Stereotype, Package_ID, ea_guid, CreatedDate, ModifiedDate)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		elementType, name, stereotype, packageID, guid, now, now,
	)
	if err != nil {
		return ElementRef{}, fmt.Errorf("ea: insert element: %w", err)
	}
	objectID, err := res.LastInsertId()
	if err != nil {
		return ElementRef{}, fmt.Errorf("ea: element id: %w", err)
	}

	// EA negates the vertical axis for diagram object rectangles.
	_, err = tx.Exec(
		`INSERT INTO t_diagramobjects (Diagram_ID, Object_ID, RectTop, RectLeft, RectRight, RectBottom, Sequence)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		diagramID, objectID, -y, x, x+elementWidth, -(y + elementHeight), onDiagram+1,
	)
	if err != nil {
		return ElementRef{}, fmt.Errorf("ea: place element on diagram: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ElementRef{}, fmt.Errorf("ea: commit element: %w", err)
	}

	return ElementRef{GUID: guid, Name: name, Type: elementType, Stereotype: stereotype}, nil
}

// AddAttribute appends an attribute to the element addressed by elementGUID.
func (r *Repo) AddAttribute(elementGUID, name string) error {
	return r.addFeature(elementGUID, name,
		`SELECT COUNT(*) FROM t_attribute WHERE Object_ID = ?`,
		`INSERT INTO t_attribute (Object_ID, Name, Pos, ea_guid) VALUES (?, ?, ?, ?)`,
	)
}

// AddOperation appends an operation (method) to the element addressed by
// elementGUID.
func (r *Repo) AddOperation(elementGUID, name string) error {
	return r.addFeature(elementGUID, name,
		`SELECT COUNT(*) FROM t_operation WHERE Object_ID = ?`,
		`INSERT INTO t_operation (Object_ID, Name, Pos, ea_guid) VALUES (?, ?, ?, ?)`,
	)
}

func (r *Repo) addFeature(elementGUID, name, countQuery, insertQuery string) error {
	var objectID int64
	err := r.db.QueryRow(
		`SELECT Object_ID FROM t_object WHERE ea_guid = ?`, elementGUID,
	).Scan(&objectID)
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Kind: "element", GUID: elementGUID}
	}
	if err != nil {
		return fmt.Errorf("ea: look up element: %w", err)
	}

	var pos int
	if err := r.db.QueryRow(countQuery, objectID).Scan(&pos); err != nil {
		return fmt.Errorf("ea: count features: %w", err)
	}

	if _, err := r.db.Exec(insertQuery, objectID, name, pos, NewGUID()); err != nil {
		return fmt.Errorf("ea: insert feature: %w", err)
	}
	return nil
}

// Stats returns aggregate counts plus the root package GUID, so callers of
// a freshly bootstrapped project know where to create their first diagram.
func (r *Repo) Stats() (Stats, error) {
	var s Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM t_package`, &s.Packages},
		{`SELECT COUNT(*) FROM t_diagram`, &s.Diagrams},
		{`SELECT COUNT(*) FROM t_object`, &s.Elements},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("ea: count: %w", err)
		}
	}

	err := r.db.QueryRow(
		`SELECT ea_guid FROM t_package WHERE Parent_ID = 0 ORDER BY Package_ID LIMIT 1`,
	).Scan(&s.RootPackageGUID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Stats{}, fmt.Errorf("ea: root package: %w", err)
	}

	return s, nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

package gdk

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ProtoXCode/Protox-GDK/sprite"
)

// Catalog is a sqlite database indexing sprite assets by the CRC-32 of their
// file contents.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, path TEXT NOT NULL, name TEXT, author TEXT, width INTEGER, height INTEGER, frames INTEGER, fps INTEGER, loop INTEGER)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tag (asset_id INTEGER NOT NULL, tag TEXT NOT NULL, FOREIGN KEY(asset_id) REFERENCES asset(id))"); err != nil {
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Asset is one catalog row.
type Asset struct {
	CRC    string
	Path   string
	Name   string
	Author string
	Width  int
	Height int
	Frames int
	FPS    int
	Loop   bool
	Tags   []string
}

// Add records the decoded document doc found at path, replacing any earlier
// entry with the same CRC.
func (c *Catalog) Add(crc, path string, doc *sprite.Document) error {
	loop := 0
	if doc.Loop {
		loop = 1
	}

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM asset WHERE crc = ?", crc).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO asset (crc, path, name, author, width, height, frames, fps, loop) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			crc, path, doc.Name, doc.Author, doc.Width, doc.Height, len(doc.Frames), doc.FPS, loop)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
	case nil:
		if _, err := c.db.Exec("UPDATE asset SET path = ?, name = ?, author = ?, width = ?, height = ?, frames = ?, fps = ?, loop = ? WHERE id = ?",
			path, doc.Name, doc.Author, doc.Width, doc.Height, len(doc.Frames), doc.FPS, loop, id); err != nil {
			return err
		}
	default:
		return err
	}

	if _, err := c.db.Exec("DELETE FROM tag WHERE asset_id = ?", id); err != nil {
		return err
	}
	for _, t := range doc.Tags {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if _, err := c.db.Exec("INSERT INTO tag (asset_id, tag) VALUES (?, ?)", id, t); err != nil {
			return err
		}
	}

	return nil
}

// FindByCRC returns the cataloged asset with the given CRC, or nil when it
// is not known.
func (c *Catalog) FindByCRC(crc string) (*Asset, error) {
	var a Asset
	var id int64
	var loop int
	switch err := c.db.QueryRow("SELECT id, crc, path, name, author, width, height, frames, fps, loop FROM asset WHERE crc = ?", crc).Scan(
		&id, &a.CRC, &a.Path, &a.Name, &a.Author, &a.Width, &a.Height, &a.Frames, &a.FPS, &loop); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}
	a.Loop = loop != 0

	rows, err := c.db.Query("SELECT tag FROM tag WHERE asset_id = ? ORDER BY tag", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		a.Tags = append(a.Tags, t)
	}
	return &a, rows.Err()
}

// FindByTag returns every cataloged asset carrying the given tag.
func (c *Catalog) FindByTag(tag string) ([]Asset, error) {
	rows, err := c.db.Query("SELECT a.crc FROM asset AS a JOIN tag AS t ON t.asset_id = a.id WHERE t.tag = ? ORDER BY a.path", tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crcs []string
	for rows.Next() {
		var crc string
		if err := rows.Scan(&crc); err != nil {
			return nil, err
		}
		crcs = append(crcs, crc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var assets []Asset
	for _, crc := range crcs {
		a, err := c.FindByCRC(crc)
		if err != nil {
			return nil, err
		}
		if a != nil {
			assets = append(assets, *a)
		}
	}
	return assets, nil
}

//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package idx maintains the TM number index: a small sqlite database
// mapping every Trismegistos number found in the corpus to the XML files
// that carry it. Rebuilding scans DCLP and DDB_EpiDoc_XML in parallel;
// lookups afterwards are single indexed queries.
package idx

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	_ "modernc.org/sqlite"

	"github.com/oli-do/PAPYRSER/internal/mm"
)

const (
	CREATETBL = `CREATE TABLE IF NOT EXISTS tmindex (
					tm integer NOT NULL,
					path text NOT NULL,
					UNIQUE(tm, path)
				);`
	CREATEIDX = `CREATE INDEX IF NOT EXISTS tmindex_tm ON tmindex (tm);`
	WIPE      = `DELETE FROM tmindex;`
	INSERT    = `INSERT OR IGNORE INTO tmindex (tm, path) VALUES (?, ?)`
	BYTM      = `SELECT DISTINCT path FROM tmindex WHERE tm = ?`
	BYPATH    = `SELECT DISTINCT tm FROM tmindex WHERE path LIKE ?`
	COUNT     = `SELECT count(*) FROM tmindex`
)

// TMIndex - a handle on the index database; safe for concurrent readers
type TMIndex struct {
	Msg *mm.MessageMaker
	DB  *sql.DB
}

// Open opens or creates the index database at path.
func Open(msg *mm.MessageMaker, path string) (*TMIndex, error) {
	if msg == nil {
		msg = mm.NewMessageMaker("idx", "", "IDX")
	}
	db, e := sql.Open("sqlite", path)
	if e != nil {
		return nil, fmt.Errorf("cannot open tm index %s: %w", path, e)
	}
	for _, q := range []string{CREATETBL, CREATEIDX} {
		if _, e = db.Exec(q); e != nil {
			return nil, fmt.Errorf("cannot prepare tm index %s: %w", path, e)
		}
	}
	return &TMIndex{Msg: msg, DB: db}, nil
}

func (x *TMIndex) Close() error {
	return x.DB.Close()
}

func (x *TMIndex) Count() int {
	n := 0
	_ = x.DB.QueryRow(COUNT).Scan(&n)
	return n
}

// entry - one (tm, path) pair found while scanning
type entry struct {
	tm   int
	path string
}

// Rebuild wipes and repopulates the index from every XML file under the
// given roots. Files are read by a worker pool; sqlite takes one writer,
// so all inserts funnel through a single transaction.
func (x *TMIndex) Rebuild(ctx context.Context, roots []string, workers int) error {
	var files []string
	for _, root := range roots {
		if _, e := os.Stat(root); e != nil {
			x.Msg.WARN("could not find " + root)
			continue
		}
		e := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".xml") {
				files = append(files, path)
			}
			return nil
		})
		if e != nil {
			return e
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("indexing failed: no XML files found under %s", strings.Join(roots, ", "))
	}

	if workers < 1 {
		workers = 1
	}
	feeder := make(chan string, workers)
	found := make(chan entry, workers*4)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range feeder {
				for _, tm := range ExtractTMs(path) {
					found <- entry{tm: tm, path: path}
				}
			}
		}()
	}

	go func() {
		defer close(feeder)
		for _, f := range files {
			select {
			case feeder <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(found)
	}()

	tx, e := x.DB.BeginTx(ctx, nil)
	if e != nil {
		return e
	}
	if _, e = tx.Exec(WIPE); e != nil {
		return e
	}
	stmt, e := tx.Prepare(INSERT)
	if e != nil {
		return e
	}
	n := 0
	for en := range found {
		if _, e = stmt.Exec(en.tm, en.path); e != nil {
			_ = tx.Rollback()
			return e
		}
		n++
	}
	if e = tx.Commit(); e != nil {
		return e
	}
	x.Msg.NOTE(fmt.Sprintf("indexed %d tm/path pairs from %d files", n, len(files)))
	return ctx.Err()
}

// PathsForTM returns every corpus file carrying the TM number.
func (x *TMIndex) PathsForTM(tm int) ([]string, error) {
	rows, e := x.DB.Query(BYTM, tm)
	if e != nil {
		return nil, e
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if e = rows.Scan(&p); e != nil {
			return nil, e
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// TMsForCollection returns the sorted TM numbers of one DDB collection.
func (x *TMIndex) TMsForCollection(collection string) ([]int, error) {
	pat := "%" + filepath.Join("DDB_EpiDoc_XML", strings.ToLower(collection)) + string(filepath.Separator) + "%"
	rows, e := x.DB.Query(BYPATH, pat)
	if e != nil {
		return nil, e
	}
	defer rows.Close()
	var tms []int
	for rows.Next() {
		var tm int
		if e = rows.Scan(&tm); e != nil {
			return nil, e
		}
		tms = append(tms, tm)
	}
	sort.Ints(tms)
	return tms, rows.Err()
}

// ExtractTMs pulls every distinct TM number out of one XML file. An
// idno element can carry several whitespace-separated numbers.
func ExtractTMs(path string) []int {
	f, e := os.Open(path)
	if e != nil {
		return nil
	}
	defer f.Close()
	root, e := xmlquery.Parse(f)
	if e != nil {
		return nil
	}
	seen := make(map[int]bool)
	var tms []int
	for _, n := range xmlquery.Find(root, "//idno[@type='TM']") {
		for _, field := range strings.Fields(n.InnerText()) {
			tm, e := strconv.Atoi(field)
			if e != nil || seen[tm] {
				continue
			}
			seen[tm] = true
			tms = append(tms, tm)
		}
	}
	return tms
}

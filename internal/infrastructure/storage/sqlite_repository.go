package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/ports"
)

const (
	// evidenceInsertCap bounds stored evidence rows per (window, issue).
	evidenceInsertCap = 10
	// evidenceReadLimit bounds evidence rows returned per read.
	evidenceReadLimit = 20
)

// SQLiteRepository persists window aggregates into an embedded SQLite file.
// The composite primary key on (window_start, window_end, issue) is the
// conflict-free upsert guarantee: concurrent writers cannot duplicate a row.
type SQLiteRepository struct {
	db     *sql.DB
	issues []string
}

var _ ports.WindowRepository = (*SQLiteRepository)(nil)

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// NewSQLiteRepository wires a sql.DB with the taxonomy issue names in
// declaration order; one stat row per issue is written for every window.
func NewSQLiteRepository(db *sql.DB, issues []string) *SQLiteRepository {
	return &SQLiteRepository{db: db, issues: issues}
}

// Init creates the schema when absent.
func (r *SQLiteRepository) Init(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("database is not configured")
	}

	if _, err := r.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS issue_windows (
		window_start TEXT NOT NULL,
		window_end   TEXT NOT NULL,
		issue        TEXT NOT NULL,
		mention_count INTEGER NOT NULL,
		top_terms    TEXT,
		PRIMARY KEY (window_start, window_end, issue)
	)`); err != nil {
		return fmt.Errorf("create issue_windows: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS issue_articles (
		window_start TEXT NOT NULL,
		window_end   TEXT NOT NULL,
		issue        TEXT NOT NULL,
		title        TEXT,
		link         TEXT,
		published    TEXT,
		source       TEXT
	)`); err != nil {
		return fmt.Errorf("create issue_articles: %w", err)
	}

	return nil
}

// UpsertWindowStats writes-or-replaces one stat row per taxonomy issue for
// the window in a single transaction. Idempotent by construction.
func (r *SQLiteRepository) UpsertWindowStats(ctx context.Context, w domain.Window, counts map[string]int, topTerms map[string]string) error {
	if r.db == nil {
		return fmt.Errorf("database is not configured")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback()

	for _, issue := range r.issues {
		query := sq.Insert("issue_windows").
			Columns("window_start", "window_end", "issue", "mention_count", "top_terms").
			Values(w.StartLabel(), w.EndLabel(), issue, counts[issue], topTerms[issue]).
			Suffix(`ON CONFLICT(window_start, window_end, issue)
				DO UPDATE SET mention_count = excluded.mention_count, top_terms = excluded.top_terms`)

		if _, err := query.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("upsert stats for %s: %w", issue, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}
	return nil
}

// ReplaceEvidence deletes the window's evidence rows and inserts up to 10 per
// issue from the new batch, all inside one transaction so readers never see a
// half-replaced window.
func (r *SQLiteRepository) ReplaceEvidence(ctx context.Context, w domain.Window, evidence map[string][]domain.Evidence) error {
	if r.db == nil {
		return fmt.Errorf("database is not configured")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin evidence tx: %w", err)
	}
	defer tx.Rollback()

	del := sq.Delete("issue_articles").
		Where(sq.Eq{"window_start": w.StartLabel(), "window_end": w.EndLabel()})
	if _, err := del.RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}

	for _, issue := range r.issues {
		rows := evidence[issue]
		if len(rows) > evidenceInsertCap {
			rows = rows[:evidenceInsertCap]
		}
		for _, ev := range rows {
			ins := sq.Insert("issue_articles").
				Columns("window_start", "window_end", "issue", "title", "link", "published", "source").
				Values(w.StartLabel(), w.EndLabel(), issue, ev.Title, ev.Link, ev.PublishedAt, ev.Source)
			if _, err := ins.RunWith(tx).ExecContext(ctx); err != nil {
				return fmt.Errorf("insert evidence for %s: %w", issue, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evidence tx: %w", err)
	}
	return nil
}

// ReadWindows returns the most recent limitWindows windows' stat rows,
// newest-first by window end.
func (r *SQLiteRepository) ReadWindows(ctx context.Context, limitWindows int) ([]domain.WindowIssueStat, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	if limitWindows <= 0 {
		limitWindows = 96
	}

	query := sq.Select("window_start", "window_end", "issue", "mention_count", "top_terms").
		From("issue_windows").
		OrderBy("window_end DESC", "issue ASC").
		Limit(uint64(limitWindows * len(r.issues)))

	rows, err := query.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	defer rows.Close()

	var stats []domain.WindowIssueStat
	for rows.Next() {
		var stat domain.WindowIssueStat
		var topTerms sql.NullString
		if err := rows.Scan(&stat.WindowStart, &stat.WindowEnd, &stat.Issue, &stat.MentionCount, &topTerms); err != nil {
			return nil, fmt.Errorf("scan window row: %w", err)
		}
		stat.TopTerms = topTerms.String
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return stats, nil
}

// ReadEvidence returns up to 20 evidence rows for the window/issue pair,
// newest-first by local publish time.
func (r *SQLiteRepository) ReadEvidence(ctx context.Context, windowStart, windowEnd, issue string) ([]domain.Evidence, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	query := sq.Select("title", "link", "published", "source").
		From("issue_articles").
		Where(sq.Eq{"window_start": windowStart, "window_end": windowEnd, "issue": issue}).
		OrderBy("published DESC").
		Limit(evidenceReadLimit)

	rows, err := query.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var evidence []domain.Evidence
	for rows.Next() {
		var ev domain.Evidence
		var title, link, published, source sql.NullString
		if err := rows.Scan(&title, &link, &published, &source); err != nil {
			return nil, fmt.Errorf("scan evidence row: %w", err)
		}
		ev.Title = title.String
		ev.Link = link.String
		ev.PublishedAt = published.String
		ev.Source = source.String
		evidence = append(evidence, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return evidence, nil
}

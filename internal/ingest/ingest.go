// Package ingest merges raw scraper output into the catalog and exports the
// catalog as the job data file read by the board.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
	"github.com/amishk599/jobboard/internal/source"
	"github.com/amishk599/jobboard/internal/store"
)

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years`)

// Result summarizes one ingest run.
type Result struct {
	Received int
	Accepted int
	Added    int
	Pruned   int
	Records  []model.RawRecord // catalog contents after the run
}

// Ingester filters incoming records, merges them into the catalog and
// prunes entries that are no longer recent.
type Ingester struct {
	cfg      config.IngestConfig
	store    *store.SQLiteStore
	notifier model.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewIngester wires an ingester with its dependencies.
func NewIngester(cfg config.IngestConfig, st *store.SQLiteStore, n model.Notifier, logger *slog.Logger) *Ingester {
	return &Ingester{
		cfg:      cfg,
		store:    st,
		notifier: n,
		logger:   logger,
		now:      time.Now,
	}
}

// Seed loads the existing data file into an empty catalog so a fresh or
// deleted catalog does not drop jobs already published. A missing data file
// seeds nothing. Seeded records are not passed to the notifier.
func (i *Ingester) Seed(dataFile string) (int, error) {
	empty, err := i.store.IsEmpty()
	if err != nil {
		return 0, fmt.Errorf("ingest: %w", err)
	}
	if !empty {
		return 0, nil
	}

	existing, err := source.LoadFile(dataFile)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ingest: seeding: %w", err)
	}
	for _, rec := range existing {
		if _, err := i.store.Put(Key(rec), rec); err != nil {
			return 0, fmt.Errorf("ingest: seeding: %w", err)
		}
	}

	i.logger.Info("seeded catalog from data file", "path", dataFile, "records", len(existing))
	return len(existing), nil
}

// Run merges records into the catalog. Later records with the same key
// replace earlier ones; newly added jobs are passed to the notifier.
func (i *Ingester) Run(records []model.RawRecord) (Result, error) {
	res := Result{Received: len(records)}

	var added []model.RawRecord
	for _, rec := range records {
		if !i.Accept(rec) {
			continue
		}
		res.Accepted++

		isNew, err := i.store.Put(Key(rec), rec)
		if err != nil {
			return res, fmt.Errorf("ingest: %w", err)
		}
		if isNew {
			added = append(added, rec)
		}
	}
	res.Added = len(added)

	i.logger.Info("filtered incoming records",
		"received", res.Received,
		"accepted", res.Accepted,
		"max_experience_years", i.cfg.MaxExperienceYears,
		"max_age", i.cfg.MaxAge.String(),
	)

	if len(added) > 0 {
		if err := i.notifier.Notify(normalize.NormalizeAll(added)); err != nil {
			return res, fmt.Errorf("ingest: notifying: %w", err)
		}
	}

	entries, err := i.store.Entries()
	if err != nil {
		return res, fmt.Errorf("ingest: %w", err)
	}
	for _, e := range entries {
		if i.isRecent(e.Record) {
			res.Records = append(res.Records, e.Record)
			continue
		}
		if err := i.store.Delete(e.UID); err != nil {
			return res, fmt.Errorf("ingest: pruning: %w", err)
		}
		res.Pruned++
	}

	i.logger.Info("catalog updated", "added", res.Added, "pruned", res.Pruned, "total", len(res.Records))
	return res, nil
}

// Accept reports whether rec passes the title, experience and recency
// checks.
func (i *Ingester) Accept(rec model.RawRecord) bool {
	title := strings.TrimSpace(stringField(rec, "title"))
	if title == "" {
		return false
	}
	if i.cfg.TitleInclude != nil && !i.cfg.TitleInclude.MatchString(title) {
		return false
	}
	if i.cfg.TitleExclude != nil && i.cfg.TitleExclude.MatchString(title) {
		return false
	}
	if i.cfg.SeniorityExclude != nil && i.cfg.SeniorityExclude.MatchString(title) {
		return false
	}

	desc := stringField(rec, "description", "basic_qualifications", "description_short")
	if TooMuchExperience(desc, i.cfg.MaxExperienceYears) {
		return false
	}

	return i.isRecent(rec)
}

// TooMuchExperience reports whether description asks for maxYears or more
// years of experience anywhere.
func TooMuchExperience(description string, maxYears int) bool {
	for _, m := range experiencePattern.FindAllStringSubmatch(description, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if years >= maxYears {
			return true
		}
	}
	return false
}

// isRecent reports whether the record's posted_date lies within MaxAge,
// counted in whole days. Records without a readable date are not recent.
func (i *Ingester) isRecent(rec model.RawRecord) bool {
	v, ok := rec["posted_date"]
	if !ok || v == nil {
		return false
	}
	posted, ok := normalize.ParseDate(v)
	if !ok {
		return false
	}
	const day = 24 * time.Hour
	age := i.now().Sub(posted)
	return age.Truncate(day) <= i.cfg.MaxAge.Truncate(day)
}

// Key returns the dedup key for rec: jobId, id or url, else a slug built
// from title, company and location.
func Key(rec model.RawRecord) string {
	if k := stringField(rec, "jobId", "id", "url"); k != "" {
		return k
	}
	return fmt.Sprintf("%s-%s-%s",
		stringField(rec, "title"), stringField(rec, "company"), stringField(rec, "location"))
}

// Export writes records to the data file and its sibling form: a .js data
// file gets a .json twin and vice versa.
func Export(records []model.RawRecord, dataFile string) error {
	if err := os.MkdirAll(filepath.Dir(dataFile), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	ext := filepath.Ext(dataFile)
	base := strings.TrimSuffix(dataFile, ext)
	return source.Write(records, base+".json", base+".js")
}

func stringField(rec model.RawRecord, keys ...string) string {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return ""
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/nookclass/internal/vocab"
)

type cacheRow struct {
	Entry string `sql:"entry"`
}

// LookupCache keeps finished lookups keyed by word so repeat clicks skip
// the network.
type LookupCache struct {
	drv *entsql.Driver
}

// GetLookup returns the cached entry for word. The bool is false on a miss.
func (c *LookupCache) GetLookup(ctx context.Context, word string) (vocab.Entry, bool, error) {
	var rows []cacheRow
	q := builder.Select("entry").
		From(builder.Table(tableLookupCache)).
		Where(entsql.EQ("word", word))
	if err := query(ctx, c.drv, q, &rows); err != nil {
		return vocab.Entry{}, false, fmt.Errorf("get lookup %q: %w", word, err)
	}
	if len(rows) == 0 {
		return vocab.Entry{}, false, nil
	}

	var e vocab.Entry
	if err := json.Unmarshal([]byte(rows[0].Entry), &e); err != nil {
		return vocab.Entry{}, false, fmt.Errorf("decode lookup %q: %w", word, err)
	}
	return e, true, nil
}

// PutLookup stores e, replacing any earlier result for the same word.
func (c *LookupCache) PutLookup(ctx context.Context, e vocab.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode lookup %q: %w", e.Word, err)
	}

	q := builder.Insert(tableLookupCache).
		Columns("word", "entry", "fetched_at").
		Values(e.Word, string(data), time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("word"), entsql.ResolveWithNewValues())
	if _, err := exec(ctx, c.drv, q); err != nil {
		return fmt.Errorf("put lookup %q: %w", e.Word, err)
	}
	return nil
}

// Clear drops every cached lookup and returns how many were removed.
func (c *LookupCache) Clear(ctx context.Context) (int, error) {
	n, err := exec(ctx, c.drv, builder.Delete(tableLookupCache))
	if err != nil {
		return 0, fmt.Errorf("clear lookup cache: %w", err)
	}
	return int(n), nil
}

// Count returns the number of cached lookups.
func (c *LookupCache) Count(ctx context.Context) (int, error) {
	var rows []struct {
		N int `sql:"n"`
	}
	q := builder.Select(entsql.As(entsql.Count("*"), "n")).From(builder.Table(tableLookupCache))
	if err := query(ctx, c.drv, q, &rows); err != nil {
		return 0, fmt.Errorf("count lookup cache: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].N, nil
}

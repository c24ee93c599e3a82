package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/nookclass/internal/vocab"
)

var builder = entsql.Dialect(dialect.SQLite)

var vocabColumns = []string{
	"word", "part_of_speech", "ipa",
	"definition_en", "definition_zh",
	"example_en", "example_zh",
}

var vocabInsertColumns = append(slices.Clone(vocabColumns), "created_at")

type vocabRow struct {
	Word         string `sql:"word"`
	PartOfSpeech string `sql:"part_of_speech"`
	IPA          string `sql:"ipa"`
	DefinitionEn string `sql:"definition_en"`
	DefinitionZh string `sql:"definition_zh"`
	ExampleEn    string `sql:"example_en"`
	ExampleZh    string `sql:"example_zh"`
}

func (r vocabRow) entry() vocab.Entry {
	return vocab.Entry{
		Word:         r.Word,
		PartOfSpeech: r.PartOfSpeech,
		IPA:          r.IPA,
		DefinitionEn: r.DefinitionEn,
		DefinitionZh: r.DefinitionZh,
		ExampleEn:    r.ExampleEn,
		ExampleZh:    r.ExampleZh,
	}
}

// VocabRepo persists the saved-word notebook. Rows keep insertion order
// and words are unique.
type VocabRepo struct {
	drv *entsql.Driver
}

// List returns every saved entry in insertion order.
func (r *VocabRepo) List(ctx context.Context) ([]vocab.Entry, error) {
	var rows []vocabRow
	q := builder.Select(vocabColumns...).
		From(builder.Table(tableVocab)).
		OrderBy("position")
	if err := query(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("list vocab: %w", err)
	}

	out := make([]vocab.Entry, len(rows))
	for i, row := range rows {
		out[i] = row.entry()
	}
	return out, nil
}

// Add saves e unless its word is already present. It reports whether a row
// was written.
func (r *VocabRepo) Add(ctx context.Context, e vocab.Entry) (bool, error) {
	n, err := exec(ctx, r.drv, insertEntry(e, time.Now()))
	if err != nil {
		return false, fmt.Errorf("add %q: %w", e.Word, err)
	}
	return n > 0, nil
}

// Merge saves every entry whose word is not yet present, in order, inside
// one transaction. It returns how many were added.
func (r *VocabRepo) Merge(ctx context.Context, entries []vocab.Entry) (int, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin merge: %w", err)
	}

	now := time.Now()
	added := 0
	for _, e := range entries {
		n, err := exec(ctx, tx, insertEntry(e, now))
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("merge %q: %w", e.Word, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit merge: %w", err)
	}
	return added, nil
}

// Remove deletes the entry for word. It reports whether a row existed.
func (r *VocabRepo) Remove(ctx context.Context, word string) (bool, error) {
	q := builder.Delete(tableVocab).Where(entsql.EQ("word", word))
	n, err := exec(ctx, r.drv, q)
	if err != nil {
		return false, fmt.Errorf("remove %q: %w", word, err)
	}
	return n > 0, nil
}

func insertEntry(e vocab.Entry, now time.Time) *entsql.InsertBuilder {
	return builder.Insert(tableVocab).
		Columns(vocabInsertColumns...).
		Values(e.Word, e.PartOfSpeech, e.IPA,
			e.DefinitionEn, e.DefinitionZh,
			e.ExampleEn, e.ExampleZh,
			now.UnixMilli()).
		OnConflict(entsql.ConflictColumns("word"), entsql.DoNothing())
}

// Clear deletes every saved entry and returns how many were removed.
func (r *VocabRepo) Clear(ctx context.Context) (int, error) {
	n, err := exec(ctx, r.drv, builder.Delete(tableVocab))
	if err != nil {
		return 0, fmt.Errorf("clear vocab: %w", err)
	}
	return int(n), nil
}

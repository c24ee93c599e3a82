package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/config"
	"github.com/abhisek/nookclass/internal/llm"
	"github.com/abhisek/nookclass/internal/logging"
	"github.com/abhisek/nookclass/internal/lookup"
	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/store"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/vocab"
)

// deps is everything a command needs: configuration, the log file and the
// open database.
type deps struct {
	cfg    *config.Config
	logger *logrus.Logger
	store  *store.Store

	logFile io.Closer
}

// loadDeps reads the configuration, opens the log file and the store.
func loadDeps(cmd *cobra.Command) (*deps, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.WithFields(logrus.Fields{"db": dbPath, "command": cmd.Name()}).Debug("dependencies ready")
	return &deps{cfg: cfg, logger: logger, store: st, logFile: logFile}, nil
}

func (d *deps) Close() {
	d.store.Close()
	d.logFile.Close()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from config or NOOKCLASS_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.DB.Path
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// lookupService builds the dictionary and translation pipeline, with the
// SQLite cache when enabled.
func (d *deps) lookupService() *lookup.Service {
	lc := d.cfg.Lookup
	dict := lookup.NewDictionaryClient(lc.DictionaryURL, lc.Timeout, d.logger)
	tr := lookup.NewGTXTranslator(lc.TranslateURL, lc.TargetLang, lc.Timeout, d.logger)

	var cache lookup.Cache
	if lc.Cache {
		cache = d.store.LookupCache()
	}
	return lookup.NewService(dict, tr, cache, d.logger)
}

// transcriptSource returns the LLM-backed source when a provider is
// configured and the preset source otherwise.
func (d *deps) transcriptSource(ctx context.Context) transcript.Source {
	cfg, ok := llm.Resolve(d.cfg.LLM)
	if !ok {
		d.logger.Info("no LLM provider configured, using preset transcripts")
		return transcript.StaticSource{}
	}
	provider, err := llm.NewProvider(ctx, cfg, d.store.LLMRequestRepo(), d.logger)
	if err != nil {
		d.logger.WithError(err).Warn("LLM provider unavailable, using preset transcripts")
		return transcript.StaticSource{}
	}
	d.logger.WithFields(logrus.Fields{"provider": cfg.Provider, "model": provider.ModelID()}).Info("LLM transcripts enabled")
	return transcript.NewLLMSource(provider, transcript.StaticSource{}, d.logger)
}

// vocabulary loads the saved words into a shell state backed by the store.
func (d *deps) vocabulary(ctx context.Context) (*shell.State, error) {
	repo := d.store.VocabRepo()
	entries, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := shell.New(vocab.NewStore(entries...), repo, d.logger)
	st.SetLoadDelays(d.cfg.Player.DemoDelay, shell.GeneratedDelay)
	return st, nil
}

// Package settings persists the administrator-editable configuration: the
// four prompt fragments and the provider/model/credential defaults. It is a
// small key/value table on sqlite; the pipeline reads it once per run and
// never writes back.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/gabrielfurtado/pedido-consolidador/internal/llm"
)

const (
	keyTaskPrompt     = "task_prompt"
	keyRulesPrompt    = "rules_prompt"
	keyFormatPrompt   = "format_prompt"
	keyFallbackPrompt = "fallback_prompt"

	keyProvider = "ai_provider"
	keyModel    = "ai_model"
	keyAPIKey   = "ai_api_key"
)

// Default prompt fragments, seeded on first open. Admins overwrite them
// through Set; a run always sees a complete PromptConfig.
var defaults = map[string]string{
	keyTaskPrompt: "Você é um assistente especializado em extrair dados de produtos " +
		"de documentos de pedidos de venda.",
	keyRulesPrompt: "Extraia APENAS produtos/materiais, ignore informações de cabeçalho, " +
		"rodapé, impostos e totais gerais do pedido.",
	keyFormatPrompt: "Para cada produto informe: codigo, referencia, descricao, " +
		"quantidade, valor_unitario e valor_total.",
	keyFallbackPrompt: "Se um campo não estiver disponível, use null. " +
		"Se não encontrar produtos, retorne uma lista vazia.",
}

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the settings database and seeds default
// prompt fragments for any missing key.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db at %s: %w", path, err)
	}

	const create = `
	CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	s := &Store{db: db, logger: logger}
	for k, v := range defaults {
		if _, err := db.Exec(
			`INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO NOTHING`, k, v,
		); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed setting %s: %w", k, err)
		}
	}

	logger.Info("settings.opened", "path", path)
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the value for a key, or "" when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, nil
}

// Set upserts one key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Prompts loads the four prompt fragments as one PromptConfig.
func (s *Store) Prompts(ctx context.Context) (llm.PromptConfig, error) {
	var p llm.PromptConfig
	var err error
	if p.Task, err = s.Get(ctx, keyTaskPrompt); err != nil {
		return p, err
	}
	if p.Rules, err = s.Get(ctx, keyRulesPrompt); err != nil {
		return p, err
	}
	if p.Format, err = s.Get(ctx, keyFormatPrompt); err != nil {
		return p, err
	}
	if p.Fallback, err = s.Get(ctx, keyFallbackPrompt); err != nil {
		return p, err
	}
	return p, nil
}

// SetPrompts persists all four fragments.
func (s *Store) SetPrompts(ctx context.Context, p llm.PromptConfig) error {
	pairs := map[string]string{
		keyTaskPrompt:     p.Task,
		keyRulesPrompt:    p.Rules,
		keyFormatPrompt:   p.Format,
		keyFallbackPrompt: p.Fallback,
	}
	for k, v := range pairs {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// ProviderSettings returns the stored provider defaults (any field may be
// empty when never configured).
func (s *Store) ProviderSettings(ctx context.Context) (provider, model, apiKey string, err error) {
	if provider, err = s.Get(ctx, keyProvider); err != nil {
		return
	}
	if model, err = s.Get(ctx, keyModel); err != nil {
		return
	}
	apiKey, err = s.Get(ctx, keyAPIKey)
	return
}

// SetProviderSettings persists the provider defaults.
func (s *Store) SetProviderSettings(ctx context.Context, provider, model, apiKey string) error {
	if err := s.Set(ctx, keyProvider, provider); err != nil {
		return err
	}
	if err := s.Set(ctx, keyModel, model); err != nil {
		return err
	}
	return s.Set(ctx, keyAPIKey, apiKey)
}

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// orchestrateConfigUpgrade : sauvegarde, migration, réécriture.
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	backupPath, err := backupConfig(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde avant migration : %w", err)
	}

	migrateConfig(cfg, fromVersion)
	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	b, err := marshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration migrée : %w", err)
	}
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		// restauration depuis la sauvegarde
		if old, rerr := os.ReadFile(backupPath); rerr == nil {
			_ = fsutil.WriteFileAtomic(cfg.configFilePath, old, 0o644)
		}
		return fmt.Errorf("échec d'écriture du fichier de configuration migré %s : %w", cfg.configFilePath, err)
	}
	return nil
}

func marshalConfig(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// backupConfig copie le fichier de config et retourne le chemin de la copie.
func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("lecture du fichier pour sauvegarde impossible : %w", err)
	}
	backup := path + ".bak." + time.Now().Format("20060102T150405")
	if err := fsutil.WriteFileAtomic(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("écriture de la sauvegarde %s impossible : %w", backup, err)
	}
	return backup, nil
}

// migrateConfig applique les étapes successives entre versions.
func migrateConfig(cfg *Config, from int) {
	for v := from; v < CurrentConfigVersion; v++ {
		switch v {
		case 0, 1:
			// v1 ne connaissait ni le lot ni le LLM : defaults explicites
			if cfg.LLM.Provider == "" {
				cfg.LLM.Provider = "deepseek"
			}
			if cfg.Batch.Pacing == 0 {
				cfg.Batch.Pacing = 500 * time.Millisecond
			}
		}
	}
}

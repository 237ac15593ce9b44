package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/logger"
)

// Fetch downloads a shared fgen.toml from any go-getter source (a local
// path, an https URL, git::, s3::, ...) and returns its contents after
// checking that it parses and validates.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	tempDir, err := os.MkdirTemp("", "fgen-config-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	dst := filepath.Join(tempDir, FileName)
	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}

	logger.Infow("Fetching config", "source", src)
	if err := client.Get(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to fetch config from %s", src),
			"sources may be paths, URLs or go-getter forced sources such as git::https://...",
		)
	}

	unknown, err := CheckFile(dst)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		logger.Warnw("Fetched config has unknown keys", "keys", strings.Join(unknown, ", "))
	}

	cfg, err := LoadFromFile(dst)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "fetched config from %s is invalid", src)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fetched config")
	}
	return data, nil
}

// Install fetches src and writes it to dst, keeping backups of a file it
// replaces.
func Install(ctx context.Context, src, dst string) error {
	data, err := Fetch(ctx, src)
	if err != nil {
		return err
	}
	return writeBytes(dst, data)
}

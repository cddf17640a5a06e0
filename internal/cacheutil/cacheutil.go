// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/graphdiff/internal/log"
)

const (
	EnvDir     = "GRAPHDIFF_CACHE_DIR"
	EnvEnabled = "GRAPHDIFF_CACHE"
)

// Entry is a document read back from the cache.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the cache root: GRAPHDIFF_CACHE_DIR when set, else the
// graphdiff directory below os.UserCacheDir. False means no usable root.
func Dir() (string, bool) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "graphdiff"), true
	}
	return "", false
}

// Enabled is true unless GRAPHDIFF_CACHE is 0 or false.
func Enabled() bool {
	switch strings.ToLower(os.Getenv(EnvEnabled)) {
	case "0", "false":
		return false
	}
	return true
}

// EnsureBaseDir creates the cache root. It reports whether the cache is
// usable.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return base, false, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns where the entry for key in namespace lives and whether
// it exists.
func EntryPath(namespace, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}

	p := filepath.Join(base, namespace, encodeKey(key))
	_, err := os.Stat(p)
	return p, err == nil
}

// Read returns the cached entry for key, if any.
func Read(namespace, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}

	p, ok := EntryPath(namespace, key)
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		log.Debugf("cache read failed: path=%s err=%v", p, err)
		return nil, false
	}

	log.Debugf("cache hit: key=%s size=%s", key, humanize.Bytes(uint64(len(data))))
	return &Entry{Key: key, Path: p, Data: data}, true
}

// Write stores data for key. Writes go to a temporary file first so readers
// never see a partial entry.
func Write(namespace, key string, data []byte) error {
	if !Enabled() {
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	dir := filepath.Join(base, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, encodeKey(key))); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s size=%s", key, humanize.Bytes(uint64(len(data))))
	return nil
}

// Purge removes entries older than hours. Zero or negative hours disable it.
func Purge(hours int) error {
	if hours <= 0 {
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.Warnf("failed to remove cache file %s: %v", path, err)
			} else {
				log.Debugf("removed cache file %s, last modified %s", path, humanize.Time(info.ModTime()))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

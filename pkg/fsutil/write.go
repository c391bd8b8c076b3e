package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".adoclint.bak"

// WriteAtomic writes content to path through a temp file in the same
// directory followed by a rename. A mode of 0 means DefaultFileMode.
// On error the original file is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// ReplaceFile writes content over a file previously read with ReadFile.
// It fails with ErrModified if the file changed on disk since then, and
// skips the write when content is unchanged. With backup set, the original
// content is saved to path+BackupSuffix first, unless a backup already
// exists. It returns whether the file was written.
func ReplaceFile(ctx context.Context, info *FileInfo, content []byte, backup bool) (bool, error) {
	modified, err := CheckModified(ctx, info)
	if err != nil {
		return false, err
	}
	if modified {
		return false, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	original, err := os.ReadFile(info.Path)
	if err != nil {
		return false, classify(info.Path, err)
	}
	if bytes.Equal(original, content) {
		return false, nil
	}

	if backup {
		if err := createBackup(ctx, info.Path, original, info.Mode); err != nil {
			return false, err
		}
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return false, err
	}
	return true, nil
}

func createBackup(ctx context.Context, path string, original []byte, mode os.FileMode) error {
	backupPath := path + BackupSuffix

	if _, err := os.Stat(backupPath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, original, mode); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

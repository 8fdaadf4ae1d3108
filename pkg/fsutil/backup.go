package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its sidecar backup, replacing an
// older backup. It returns the backup path, or "" when path does not exist.
func CreateBackup(ctx context.Context, path string) (string, error) {
	content, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	backupPath := BackupPath(path)
	if err := WriteAtomic(ctx, backupPath, content, info.Mode.Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

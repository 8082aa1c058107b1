// Package lockfile records which inputs a batch run has already converted,
// keyed by input path relative to the batch root.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

const (
	// FileName is the lock file written at the batch root.
	FileName       = ".md2docx.lock"
	currentVersion = 1
	codeLockError  = "LOCK_ERROR"
)

type LockFile struct {
	Version int               `json:"version"`
	Entries map[string]*Entry `json:"entries"`
}

type Entry struct {
	InputSHA    string    `json:"input_sha"`
	StyleSHA    string    `json:"style_sha"`
	Output      string    `json:"output"`
	ConvertedAt time.Time `json:"converted_at"`
}

// Fresh reports whether e was produced from the same input and style.
func (e *Entry) Fresh(inputSHA, styleSHA string) bool {
	return e != nil && e.InputSHA == inputSHA && e.StyleSHA == styleSHA
}

// HashContent returns the hex SHA-256 of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Load reads the lock file in dir. A missing file yields an empty lock.
func Load(dir string) (*LockFile, error) {
	lockPath := filepath.Join(dir, FileName)
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}

		return nil, oops.
			Code(codeLockError).
			With("path", lockPath).
			Wrapf(err, "reading lock file")
	}

	lock := &LockFile{}
	if unmarshalErr := json.Unmarshal(data, lock); unmarshalErr != nil {
		return nil, oops.
			Code(codeLockError).
			With("path", lockPath).
			Hint("Delete the lock file or run 'md2docx batch --force' to regenerate it").
			Wrapf(unmarshalErr, "parsing lock file")
	}

	if lock.Version == 0 {
		lock.Version = currentVersion
	}

	if lock.Entries == nil {
		lock.Entries = map[string]*Entry{}
	}

	return lock, nil
}

func New() *LockFile {
	return &LockFile{
		Version: currentVersion,
		Entries: map[string]*Entry{},
	}
}

// Save writes the lock file into dir through a temporary file.
func (l *LockFile) Save(dir string) error {
	if l == nil {
		return oops.
			Code(codeLockError).
			Hint("Initialize lock file state before saving").
			Errorf("cannot save nil lock file")
	}

	if l.Version == 0 {
		l.Version = currentVersion
	}

	if l.Entries == nil {
		l.Entries = map[string]*Entry{}
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return oops.
			Code(codeLockError).
			Wrapf(err, "encoding lock file")
	}

	data = append(data, '\n')
	lockPath := filepath.Join(dir, FileName)

	tempFile, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return oops.
			Code(codeLockError).
			With("path", dir).
			Wrapf(err, "creating temporary lock file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := tempFile.Write(data); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code(codeLockError).
			With("path", tempPath).
			Wrapf(writeErr, "writing temporary lock file")
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code(codeLockError).
			With("path", tempPath).
			Wrapf(closeErr, "closing temporary lock file")
	}

	if renameErr := os.Rename(tempPath, lockPath); renameErr != nil {
		return oops.
			Code(codeLockError).
			With("from", tempPath).
			With("to", lockPath).
			Wrapf(renameErr, "replacing lock file")
	}

	return nil
}

func (l *LockFile) Get(input string) *Entry {
	if l == nil {
		return nil
	}

	return l.Entries[input]
}

func (l *LockFile) Set(input string, entry *Entry) {
	if l == nil {
		return
	}

	if l.Entries == nil {
		l.Entries = map[string]*Entry{}
	}

	l.Entries[input] = entry
}

func (l *LockFile) Remove(input string) {
	if l == nil || l.Entries == nil {
		return
	}

	delete(l.Entries, input)
}

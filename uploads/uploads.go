// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package uploads stores record attachments on local disk.
//
// Each attachment belongs to exactly one record, identified by its
// collection name and record identity.  The client's original
// filename is discarded; only its extension survives, and the stored
// name embeds a random UUID so that names are never guessable and
// never collide.  Attaching a new file to a record that already has
// one replaces it.
package uploads

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/satori/go.uuid"
)

// DefaultExtensions is the allowed-extension whitelist used when New
// is given none.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}

// ErrBadExtension is returned from Attach if the uploaded file's
// extension is not on the whitelist.
type ErrBadExtension struct {
	Ext string
}

func (err ErrBadExtension) Error() string {
	return fmt.Sprintf("file type %q not allowed", err.Ext)
}

// ErrNoAttachment is returned from Open and Detach if the record has
// no attachment.
type ErrNoAttachment struct {
	ID string
}

func (err ErrNoAttachment) Error() string {
	return fmt.Sprintf("no attachment for id %v", err.ID)
}

// Store holds attachments under a single root directory, one
// subdirectory per collection.  Stored names have the form
// <id>-<uuid><ext>.
type Store struct {
	root    string
	allowed map[string]struct{}
}

// New creates an attachment store rooted at dir, creating the
// directory if needed.  extensions is the allowed-extension whitelist
// (with leading dots); if empty, DefaultExtensions applies.
func New(dir string, extensions []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Store{root: dir, allowed: allowed}, nil
}

// Attach stores the contents of r as the attachment of the given
// record, replacing any previous attachment.  origName is only
// consulted for its extension.  Returns the stored filename.
func (s *Store) Attach(collection, id, origName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(origName))
	if _, ok := s.allowed[ext]; !ok {
		return "", ErrBadExtension{Ext: ext}
	}

	dir := filepath.Join(s.root, collection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s", id, uuid.NewV4().String(), ext)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", err
	}

	// A previous attachment for the same record is now stale.
	for _, old := range s.find(collection, id) {
		if old != name {
			os.Remove(filepath.Join(dir, old))
		}
	}
	return name, nil
}

// Open returns a reader on the record's attachment along with the
// stored filename.  The caller must close the reader.
func (s *Store) Open(collection, id string) (io.ReadCloser, string, error) {
	names := s.find(collection, id)
	if len(names) == 0 {
		return nil, "", ErrNoAttachment{ID: id}
	}
	f, err := os.Open(filepath.Join(s.root, collection, names[0]))
	if err != nil {
		return nil, "", err
	}
	return f, names[0], nil
}

// Detach removes the record's attachment.  Removing an attachment
// that does not exist returns ErrNoAttachment.
func (s *Store) Detach(collection, id string) error {
	names := s.find(collection, id)
	if len(names) == 0 {
		return ErrNoAttachment{ID: id}
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.root, collection, name)); err != nil {
			return err
		}
	}
	return nil
}

// Release removes the record's attachment if it has one.  Unlike
// Detach, a record with no attachment is not an error; this is the
// cleanup path for record deletion.
func (s *Store) Release(collection, id string) error {
	err := s.Detach(collection, id)
	if _, missing := err.(ErrNoAttachment); missing {
		return nil
	}
	return err
}

// find returns the stored filenames belonging to a record.  There is
// normally at most one, but a crash between create and cleanup in
// Attach can leave an extra behind.
func (s *Store) find(collection, id string) []string {
	entries, err := ioutil.ReadDir(filepath.Join(s.root, collection))
	if err != nil {
		return nil
	}
	var names []string
	prefix := id + "-"
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	return names
}

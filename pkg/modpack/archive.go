package modpack

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path"

	"github.com/matzehuels/packdiff/pkg/errors"
)

// ManifestName is the archive entry holding the pack manifest.
const ManifestName = "manifest.json"

// Open reads the manifest out of the pack archive at path.
//
// Returns:
//   - FILE_NOT_FOUND if path does not exist
//   - INVALID_PATH for an empty path or one with control characters
//   - INVALID_ARCHIVE if the file is not a readable zip or has no manifest.json
//   - INVALID_MANIFEST if the manifest is not valid JSON or lacks a files list
func Open(path string) (*Manifest, error) {
	if err := errors.ValidateArchivePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "archive not found: %s", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArchive, err, "file is not a valid zip archive: %s", path)
	}
	defer zr.Close()

	f := findManifest(zr.File)
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidArchive, "no %s found in %s", ManifestName, path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArchive, err, "read %s from %s", ManifestName, path)
	}
	defer rc.Close()

	return Parse(rc, path)
}

func findManifest(files []*zip.File) *zip.File {
	for _, f := range files {
		if path.Clean(f.Name) == ManifestName {
			return f
		}
	}
	return nil
}

// manifestDoc mirrors Manifest but keeps Files as a pointer so that a
// missing key can be told apart from an empty list.
type manifestDoc struct {
	Name      string       `json:"name"`
	Version   string       `json:"version"`
	Author    string       `json:"author"`
	Minecraft Minecraft    `json:"minecraft"`
	Files     *[]FileEntry `json:"files"`
}

// Parse decodes a manifest document. source names the origin in errors.
func Parse(r io.Reader, source string) (*Manifest, error) {
	var doc manifestDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid JSON in %s from %s", ManifestName, source)
	}
	if doc.Files == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s from %s has no files list", ManifestName, source)
	}
	for i, f := range *doc.Files {
		if err := errors.ValidateEntryID("projectID", f.ProjectID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "files[%d] in %s", i, source)
		}
		if err := errors.ValidateEntryID("fileID", f.FileID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "files[%d] in %s", i, source)
		}
	}
	return &Manifest{
		Name:      doc.Name,
		Version:   doc.Version,
		Author:    doc.Author,
		Minecraft: doc.Minecraft,
		Files:     *doc.Files,
	}, nil
}

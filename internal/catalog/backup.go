package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cortesys/cutplan/internal/model"
)

// BackupData bundles all store contents into one portable JSON document.
type BackupData struct {
	Version      string              `json:"version"`
	CreatedAt    string              `json:"created_at"`
	SheetTypes   []model.SheetType   `json:"sheet_types"`
	BandingTypes []model.BandingType `json:"banding_types"`
	Clients      []model.Client      `json:"clients"`
	Projects     []model.CutProject  `json:"projects"`
}

const backupVersion = "1.0.0"

// Export writes every catalog and project of the store to a single JSON
// file, for moving a workshop's data between machines.
func (s *Store) Export(path string) error {
	sheets, err := s.SheetTypes()
	if err != nil {
		return err
	}
	bandings, err := s.BandingTypes()
	if err != nil {
		return err
	}
	clients, err := s.Clients()
	if err != nil {
		return err
	}
	projects, err := s.Projects()
	if err != nil {
		return err
	}

	backup := BackupData{
		Version:      backupVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		SheetTypes:   sheets,
		BandingTypes: bandings,
		Clients:      clients,
		Projects:     projects,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// Import reads a backup file and replaces the store contents with it.
// Existing entries not present in the backup are lost; callers wanting a
// merge should export first.
func (s *Store) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("parse backup file: %w", err)
	}
	if backup.Version == "" {
		return fmt.Errorf("invalid backup file: missing version field")
	}

	if err := s.writeJSON(sheetTypesFile, backup.SheetTypes); err != nil {
		return err
	}
	if err := s.writeJSON(bandingTypesFile, backup.BandingTypes); err != nil {
		return err
	}
	if err := s.writeJSON(clientsFile, backup.Clients); err != nil {
		return err
	}
	return s.writeJSON(projectsFile, backup.Projects)
}

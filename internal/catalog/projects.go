package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/cortesys/cutplan/internal/model"
)

const projectsFile = "projects.json"

// Projects loads the saved cut projects, most recently updated first.
func (s *Store) Projects() ([]model.CutProject, error) {
	var projects []model.CutProject
	if err := s.readJSON(projectsFile, &projects); err != nil {
		if isNotExist(err) {
			return []model.CutProject{}, nil
		}
		return nil, err
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt > projects[j].UpdatedAt
	})
	return projects, nil
}

// Project returns the saved project with the given ID.
func (s *Store) Project(id string) (model.CutProject, error) {
	projects, err := s.Projects()
	if err != nil {
		return model.CutProject{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.CutProject{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// SaveProject inserts or replaces a project and stamps UpdatedAt.
func (s *Store) SaveProject(p model.CutProject) error {
	projects, err := s.Projects()
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			return s.writeJSON(projectsFile, projects)
		}
	}
	return s.writeJSON(projectsFile, append(projects, p))
}

// DeleteProject removes a saved project. Unlike catalog entries, projects
// are not referenced elsewhere, so a hard delete is safe.
func (s *Store) DeleteProject(id string) error {
	projects, err := s.Projects()
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].ID == id {
			return s.writeJSON(projectsFile, append(projects[:i], projects[i+1:]...))
		}
	}
	return fmt.Errorf("project %s: %w", id, ErrNotFound)
}

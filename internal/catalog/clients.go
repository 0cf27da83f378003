package catalog

import (
	"fmt"

	"github.com/cortesys/cutplan/internal/model"
)

const clientsFile = "clients.json"

// Clients loads the client list. A fresh store has no clients.
func (s *Store) Clients() ([]model.Client, error) {
	var clients []model.Client
	if err := s.readJSON(clientsFile, &clients); err != nil {
		if isNotExist(err) {
			return []model.Client{}, nil
		}
		return nil, err
	}
	return clients, nil
}

// AddClient appends a client.
func (s *Store) AddClient(c model.Client) error {
	clients, err := s.Clients()
	if err != nil {
		return err
	}
	return s.writeJSON(clientsFile, append(clients, c))
}

// UpdateClient replaces the client with the same ID.
func (s *Store) UpdateClient(c model.Client) error {
	clients, err := s.Clients()
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == c.ID {
			clients[i] = c
			return s.writeJSON(clientsFile, clients)
		}
	}
	return fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
}

// DeactivateClient soft-deletes a client so its projects stay attributable.
func (s *Store) DeactivateClient(id string) error {
	clients, err := s.Clients()
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == id {
			clients[i].Active = false
			return s.writeJSON(clientsFile, clients)
		}
	}
	return fmt.Errorf("client %s: %w", id, ErrNotFound)
}

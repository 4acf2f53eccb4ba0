package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
)

var unsafeKey = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type stateStore struct {
	mu          sync.Mutex
	dir         string
	historyPath string
}

// NewStateStore - creates the cookie and run history storage under dir
func NewStateStore(dir string) (interfaces.Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &stateStore{
		dir:         dir,
		historyPath: filepath.Join(dir, "history.json"),
	}, nil
}

func (s *stateStore) cookiePath(key string) string {
	return filepath.Join(s.dir, "cookies-"+unsafeKey.ReplaceAllString(key, "_")+".json")
}

// SaveCookies - saves the cookies of a signed-in session under key
func (s *stateStore) SaveCookies(key string, cookies []entities.Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.cookiePath(key), cookies)
}

// LoadCookies - loads the cookies saved under key; a missing key yields none
func (s *stateStore) LoadCookies(key string) ([]entities.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cookies []entities.Cookie
	if err := readJSON(s.cookiePath(key), &cookies); err != nil {
		return nil, err
	}
	return cookies, nil
}

// AppendHistory - appends finished scenario results to the run history
func (s *stateStore) AppendHistory(results []entities.ScenarioResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []entities.ScenarioResult
	if err := readJSON(s.historyPath, &history); err != nil {
		return err
	}
	return writeJSON(s.historyPath, append(history, results...))
}

// LoadHistory - loads every recorded scenario result
func (s *stateStore) LoadHistory() ([]entities.ScenarioResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := []entities.ScenarioResult{}
	if err := readJSON(s.historyPath, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// writeJSON - writes through a temporary file so readers never see a partial file
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

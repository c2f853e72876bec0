package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// The CLI runs one command per process, so credentials are persisted
// between invocations in the user's home directory.
const credentialsFileName = ".clientele-credentials.json"

func credentialsFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, credentialsFileName), nil
}

// Save writes the current credentials to disk
func (s *Session) Save() error {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	path, err := credentialsFilePath()
	if err != nil {
		return err
	}

	if creds == nil {
		// Signed out - drop the file if present
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	payload, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0600)
}

// Restore loads previously saved credentials, if any. A missing file
// is not an error - it just means nobody is signed in.
func (s *Session) Restore() error {
	path, err := credentialsFilePath()
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	creds := Credentials{}
	if err := json.Unmarshal(payload, &creds); err != nil {
		return err
	}

	s.install(&creds)
	return nil
}

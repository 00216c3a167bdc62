package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/daymark/internal/model"
)

// Config holds sync configuration
type Config struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	LastSync  int64  `json:"last_sync"`
}

// Client talks to the sync server. The remote state is a single AppData
// document; the server applies last-writer-wins on every save.
type Client struct {
	config     *Config
	configPath string
	httpClient *http.Client
}

// NewClient creates a new sync client
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".daymark", "sync.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.loadConfig()
	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{
			ServerURL: "http://localhost:8080",
		}
		return
	}

	c.config = &Config{}
	json.Unmarshal(data, c.config)
}

func (c *Client) saveConfig() error {
	dir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the sync server URL
func (c *Client) SetServer(url string) error {
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if user is logged in
func (c *Client) IsLoggedIn() bool {
	return c.config.Token != ""
}

// GetStatus returns current sync status
func (c *Client) GetStatus() (string, string, int64) {
	return c.config.ServerURL, c.config.UserID, c.config.LastSync
}

// UpdateSyncTime records the moment of the last successful sync
func (c *Client) UpdateSyncTime() error {
	c.config.LastSync = time.Now().Unix()
	return c.saveConfig()
}

// Register creates a new account
func (c *Client) Register(username, email, password string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/register",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("register failed: %s", string(respBody))
	}

	var result struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// Login authenticates with username and password
func (c *Client) Login(username, password string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/login",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed: %s", string(respBody))
	}

	var result struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// Logout clears the session
func (c *Client) Logout() error {
	c.config.Token = ""
	c.config.UserID = ""
	c.config.LastSync = 0
	return c.saveConfig()
}

// LoadState fetches the remote document. found is false when the server
// has no document for this user yet.
func (c *Client) LoadState() (data model.AppData, found bool, err error) {
	if !c.IsLoggedIn() {
		return model.AppData{}, false, fmt.Errorf("not logged in")
	}

	req, err := http.NewRequest(http.MethodGet, c.config.ServerURL+"/api/v1/state", nil)
	if err != nil {
		return model.AppData{}, false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AppData{}, false, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.NewAppData(), false, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return model.AppData{}, false, fmt.Errorf("load failed: %s", string(respBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.AppData{}, false, err
	}

	data, err = model.UnmarshalAppData(body)
	if err != nil {
		return model.AppData{}, false, err
	}
	return data, true, nil
}

// SaveState replaces the remote document wholesale (last-writer-wins)
func (c *Client) SaveState(data model.AppData) error {
	if !c.IsLoggedIn() {
		return fmt.Errorf("not logged in")
	}

	body, err := data.Marshal()
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, c.config.ServerURL+"/api/v1/state", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("save failed: %s", string(respBody))
	}
	return nil
}

// ClearRemote deletes the stored document on the server
func (c *Client) ClearRemote() error {
	if !c.IsLoggedIn() {
		return fmt.Errorf("not logged in")
	}

	req, err := http.NewRequest(http.MethodPost, c.config.ServerURL+"/api/v1/clear", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("clear failed: %s", string(respBody))
	}
	return nil
}

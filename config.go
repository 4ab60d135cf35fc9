// ABOUTME: Configuration for strava-training-report.
// ABOUTME: Loads the yaml app config, the key=value credentials file, and interactive credential setup.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultCredentialsFile = "strava_id.txt"
	defaultConfigFile      = "config.yaml"
)

var errMissingCredential = errors.New("missing credential")

type Config struct {
	OutputDir          string `yaml:"output_dir"`
	CallbackPort       int    `yaml:"callback_port"`
	PerPage            int    `yaml:"per_page"`
	PageDelaySeconds   int    `yaml:"page_delay_seconds"`
	AuthTimeoutSeconds int    `yaml:"auth_timeout_seconds"`
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:          ".",
		CallbackPort:       8000,
		PerPage:            100,
		PageDelaySeconds:   1,
		AuthTimeoutSeconds: 180,
	}
}

// loadConfig reads the optional yaml config. A missing file is not an
// error; defaults are returned and any keys present override them.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.CallbackPort <= 0 {
		cfg.CallbackPort = 8000
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	if cfg.PageDelaySeconds < 0 {
		cfg.PageDelaySeconds = 1
	}
	if cfg.AuthTimeoutSeconds <= 0 {
		cfg.AuthTimeoutSeconds = 180
	}

	return cfg, nil
}

type Credentials struct {
	ClientID     string
	ClientSecret string
}

// loadCredentials reads `key = value` lines from the credentials file.
// Blank lines and lines starting with # are skipped, as are lines
// without an = sign. client_id and client_secret must both be present.
func loadCredentials(path string) (*Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	creds := &Credentials{
		ClientID:     values["client_id"],
		ClientSecret: values["client_secret"],
	}
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id (in %s)", errMissingCredential, path)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret (in %s)", errMissingCredential, path)
	}

	return creds, nil
}

func saveCredentials(path string, creds *Credentials) error {
	content := fmt.Sprintf("client_id = %s\nclient_secret = %s\n", creds.ClientID, creds.ClientSecret)
	return os.WriteFile(path, []byte(content), 0600)
}

// runSetup interactively collects credentials when the file is missing.
func runSetup(path string) (*Credentials, error) {
	fmt.Printf("No credentials found at %s. Let's set them up.\n", path)
	fmt.Println("You can find these under Strava > Settings > My API Application.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Client ID: ")
	clientID, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	fmt.Print("Client Secret: ")
	clientSecret, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	creds := &Credentials{
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: both client_id and client_secret are required", errMissingCredential)
	}

	if err := saveCredentials(path, creds); err != nil {
		return nil, fmt.Errorf("could not save credentials: %w", err)
	}
	fmt.Printf("\nCredentials saved to %s\n\n", path)

	return creds, nil
}

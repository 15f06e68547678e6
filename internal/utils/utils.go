package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chimpctl/chimpctl/internal/services/mailchimp"
)

const configTemplate = `# Optional bind address for the webhook listener, default "0.0.0.0"
bind_address = "0.0.0.0"

# Optional TCP port for the webhook listener, default 8585
port = 8585

# Optional path the webhook listener answers on, default "/webhook"
webhook_path = "/webhook"

# Optional log level, default "info"
loglevel = "info"

[mailchimp]
# Required. Mailchimp API key in the form "<key>-<server prefix>".
# You can create one under Account -> Extras -> API keys.
api_key = "{{MAILCHIMP_API_KEY}}"
`

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptAPIKey interactively asks for a Mailchimp API key and checks its format.
func PromptAPIKey(r io.Reader) (string, error) {
	fmt.Print("Mailchimp API key: ")

	key, err := readLine(r)
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	if _, err := mailchimp.DeriveServerPrefix(key); err != nil {
		return "", err
	}

	return key, nil
}

// PromptFilePath interactively asks for the path of a file to upload.
func PromptFilePath(r io.Reader) (string, error) {
	fmt.Print("File to upload: ")

	path, err := readLine(r)
	if err != nil {
		return "", fmt.Errorf("failed to read file path: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("no file path given")
	}

	return path, nil
}

// GenerateConfig generates a configuration file with the Mailchimp API key
func GenerateConfig(configPath string, in io.Reader) error {
	fmt.Printf("Generating config %s\n", configPath)

	apiKey, err := PromptAPIKey(in)
	if err != nil {
		return err
	}

	// Replace placeholder with actual API key
	config := strings.Replace(configTemplate, "{{MAILCHIMP_API_KEY}}", apiKey, 1)

	// Check if config file already exists and back it up
	if _, err := os.Stat(configPath); err == nil {
		backupPath := configPath + ".bak"
		fmt.Printf("Backing up config %s\n", configPath)
		if err := os.Rename(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	fmt.Printf("Writing %s\n", configPath)
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

package app

import (
	"errors"
	"testing"

	"github.com/chimpctl/chimpctl/internal/config"
)

type mockMailchimpClient struct {
	pingCalled bool
	pingErr    error
}

func (m *mockMailchimpClient) Upload(filePath string) (interface{}, error) {
	return map[string]interface{}{"name": filePath}, nil
}
func (m *mockMailchimpClient) ListFiles(count, offset int) (interface{}, error) {
	return map[string]interface{}{"files": []interface{}{}}, nil
}
func (m *mockMailchimpClient) ListCampaigns(count, offset int) (interface{}, error) {
	return map[string]interface{}{"campaigns": []interface{}{}}, nil
}
func (m *mockMailchimpClient) Ping() (interface{}, error) {
	m.pingCalled = true
	if m.pingErr != nil {
		return nil, m.pingErr
	}
	return map[string]interface{}{"health_status": "Everything's Chimpy!"}, nil
}
func (m *mockMailchimpClient) Do(method, path string, body interface{}) (interface{}, error) {
	return nil, nil
}

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Mailchimp.APIKey = "abc123-us18"
	return cfg
}

func TestNewContainerDefaults(t *testing.T) {
	cfg := baseConfig()
	mock := &mockMailchimpClient{}

	container, err := NewContainer(cfg, WithMailchimpClient(mock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger == nil {
		t.Fatal("expected logger to be initialized")
	}
	if container.MailchimpClient != mock {
		t.Error("expected MailchimpClient to be overridden with mock")
	}
}

func TestContainerOverrides(t *testing.T) {
	cfg := baseConfig()
	mock := &mockMailchimpClient{}
	customLogger := buildDefaultLogger("debug")

	container, err := NewContainer(
		cfg,
		WithLogger(customLogger),
		WithMailchimpClient(mock),
		WithAPIKeyValidation(false),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger != customLogger {
		t.Error("expected custom logger to be used")
	}
	if container.MailchimpClient != mock {
		t.Error("expected custom mailchimp client to be used")
	}
	if container.ValidateAPIKey {
		t.Error("expected API key validation to be disabled via option")
	}
	if mock.pingCalled {
		t.Error("expected Ping to be skipped when validation is disabled")
	}
}

func TestNewContainerNilConfigError(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestWithLoggerNilError(t *testing.T) {
	cfg := baseConfig()
	_, err := NewContainer(cfg, WithLogger(nil))
	if err == nil {
		t.Fatal("expected error when logger is nil")
	}
}

func TestWithMailchimpClientNilError(t *testing.T) {
	cfg := baseConfig()
	_, err := NewContainer(cfg, WithMailchimpClient(nil))
	if err == nil {
		t.Fatal("expected error when mailchimp client is nil")
	}
}

func TestAPIKeyValidationCallsPing(t *testing.T) {
	cfg := baseConfig()
	mock := &mockMailchimpClient{}

	container, err := NewContainer(cfg, WithMailchimpClient(mock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mock.pingCalled {
		t.Error("expected Ping to be called during container construction")
	}
	if container.MailchimpClient != mock {
		t.Error("expected mock mailchimp client to be retained")
	}
}

func TestAPIKeyValidationFailure(t *testing.T) {
	cfg := baseConfig()
	mock := &mockMailchimpClient{pingErr: errors.New("connection refused")}

	if _, err := NewContainer(cfg, WithMailchimpClient(mock)); err == nil {
		t.Fatal("expected error when ping fails")
	}
}

package keyhold_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/keyhold/keyhold/pkg/api"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common helpers for keyhold end-to-end tests: container setup and account
 * bootstrapping through the public API.
 */

const testImageName = "keyhold-test:latest"

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building keyhold Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up keyhold Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/keyhold/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// setupContainer starts keyhold with relaxed rate limits and returns its
// base URL. Most tests make many rapid requests, which would otherwise trip
// the strict production limits.
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"KEYHOLD_DATABASE_FILE":    "/tmp/keyhold.db",
			"KEYHOLD_PEPPER_FILE":      "/tmp/pepper",
			"KEYHOLD_SESSION_KEY_FILE": "/tmp/session.key",
			"KEYHOLD_ISSUER":           "keyhold",
			"KEYHOLD_BASE_URL":         "http://keyhold.test",
			"ENV":                      "test",
			"LOG_LEVEL":                "info",
			"LOG_FORMAT":               "json",

			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerAndLogin creates an account through the public API and returns a
// client bound to its session.
func registerAndLogin(t *testing.T, base *api.Client, username, email, password, role string) (*api.Client, api.User) {
	t.Helper()
	ctx := context.Background()

	user, err := base.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)

	login, err := base.Login(ctx, username, password)
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	return base.WithToken(login.Token), user
}

// createProperty makes a property through the API with sensible defaults.
func createProperty(t *testing.T, client *api.Client, name string) api.Property {
	t.Helper()

	property, err := client.CreateProperty(context.Background(), api.PropertyRequest{
		Name:         name,
		AddressLine1: "1 High Street",
		City:         "Leeds",
		County:       "West Yorkshire",
		Postcode:     "LS1 1AA",
		PropertyType: "flat",
		Bedrooms:     2,
		Bathrooms:    1,
	})
	require.NoError(t, err)
	return property
}

// requireAPIError asserts err is an *api.APIError with the given status and
// code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, code, apiErr.Code)
}

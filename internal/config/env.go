package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
)

const secretsTimeout = 10 * time.Second

// SecretsClient is the part of the Secrets Manager API used here.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadEnv exports secrets from AWS Secrets Manager (when a secret id is
// configured) and then loads the .env file. Failures are logged, never fatal:
// containers usually inject the environment directly.
func LoadEnv(logger *slog.Logger, envFile string) {
	if id := secretID(); id != "" {
		ctx, cancel := context.WithTimeout(context.Background(), secretsTimeout)
		defer cancel()
		if err := loadAWSSecrets(ctx, logger, id); err != nil {
			logger.Warn("skipping AWS Secrets Manager load", "error", err)
		}
	}
	loadDotEnv(logger, envFile)
}

func secretID() string {
	if id := os.Getenv("AWS_SECRETS_MANAGER_SECRET_ID"); id != "" {
		return id
	}
	return os.Getenv("AWS_SECRET_ID")
}

func loadDotEnv(logger *slog.Logger, defaultPath string) {
	envFile := os.Getenv("ENV_FILE_PATH")
	if envFile == "" {
		envFile = defaultPath
	}
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		if os.Getenv("KUBERNETES_SERVICE_HOST") == "" {
			logger.Debug(".env file not found, using process environment", "path", envFile)
		}
		return
	}
	logger.Debug("loaded .env file", "path", envFile)
}

func loadAWSSecrets(ctx context.Context, logger *slog.Logger, id string) error {
	var opts []func(*awsconfig.LoadOptions) error
	if region := os.Getenv("AWS_SECRETS_MANAGER_REGION"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	stage := os.Getenv("AWS_SECRETS_MANAGER_VERSION_STAGE")
	overwrite := strings.EqualFold(os.Getenv("AWS_SECRETS_MANAGER_OVERWRITE"), "true")

	applied, err := ApplySecret(ctx, secretsmanager.NewFromConfig(cfg), id, stage, overwrite)
	if err != nil {
		return err
	}
	logger.Info("loaded env vars from AWS Secrets Manager", "secret", id, "applied", applied)
	return nil
}

// ApplySecret fetches a JSON object secret and exports its keys as
// environment variables. Existing variables are kept unless overwrite is set.
// It returns how many variables were set.
func ApplySecret(ctx context.Context, client SecretsClient, id, stage string, overwrite bool) (int, error) {
	if stage == "" {
		stage = "AWSCURRENT"
	}
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(id),
		VersionStage: aws.String(stage),
	})
	if err != nil {
		return 0, fmt.Errorf("fetching secret %s: %w", id, err)
	}

	var payload string
	switch {
	case out.SecretString != nil:
		payload = *out.SecretString
	case len(out.SecretBinary) > 0:
		payload = string(out.SecretBinary)
	default:
		return 0, fmt.Errorf("secret %s has no payload", id)
	}

	var kv map[string]any
	if err := json.Unmarshal([]byte(payload), &kv); err != nil {
		return 0, fmt.Errorf("parsing secret %s as JSON: %w", id, err)
	}

	applied := 0
	for key, val := range kv {
		if !overwrite && os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return applied, fmt.Errorf("setting env %s from secret: %w", key, err)
		}
		applied++
	}
	return applied, nil
}

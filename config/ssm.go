package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the subset of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterGetter builds an SSM client from the default AWS credential chain.
func NewParameterGetter(ctx context.Context) (ParameterGetter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ResolveDatabasePassword replaces the database password with the decrypted
// value of the configured SSM parameter. It is a no-op when no parameter is set.
func ResolveDatabasePassword(ctx context.Context, client ParameterGetter, db *DatabaseSettings) error {
	if db.PasswordParameter == "" {
		return nil
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(db.PasswordParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get parameter %s: %w", db.PasswordParameter, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return fmt.Errorf("parameter %s has no value", db.PasswordParameter)
	}

	db.Password = aws.ToString(out.Parameter.Value)
	return nil
}

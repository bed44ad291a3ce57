package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s := Load(map[string]string{})

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 180*time.Second, s.ReadTimeout)
	assert.Equal(t, "sqlite", s.Database.Type)
	assert.Equal(t, "./applications", s.ApplicationsDir)
	assert.Equal(t, int64(200<<20), s.MaxUploadSize)
	assert.Empty(t, s.AcceptedOrigins)
	assert.NoError(t, s.Validate())
}

func TestLoadOverrides(t *testing.T) {
	s := Load(map[string]string{
		"PORT":             "9090",
		"SESSION_SECRET":   "a-real-production-secret",
		"DB_TYPE":          "postgres",
		"DATABASE_URL":     "postgres://u:p@db:5432/store",
		"ACCEPTED_ORIGINS": "https://a.example, ,https://b.example",
		"MAX_UPLOAD_MB":    "5",
		"APPLICATIONS_DIR": "/srv/apps",
	})

	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, "postgres://u:p@db:5432/store", s.Database.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.AcceptedOrigins)
	assert.Equal(t, int64(5<<20), s.MaxUploadSize)
	assert.Equal(t, "/srv/apps", s.ApplicationsDir)
	assert.NoError(t, s.Validate())
}

func TestDSNFromParts(t *testing.T) {
	d := DatabaseSettings{Host: "h", Port: "5433", User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", d.DSN())
}

func TestValidateRejectsUnknownDatabase(t *testing.T) {
	s := Load(map[string]string{"DB_TYPE": "oracle"})
	assert.Error(t, s.Validate())
}

func TestValidateRejectsShortSessionSecret(t *testing.T) {
	s := Load(map[string]string{"SESSION_SECRET": "short"})
	assert.Error(t, s.Validate())
}

func TestValidateRejectsDefaultSessionSecretOutsideSqlite(t *testing.T) {
	for _, dbType := range []string{"postgres", "supa"} {
		s := Load(map[string]string{"DB_TYPE": dbType})
		assert.Equal(t, DefaultSessionSecret, s.SessionSecret)
		assert.ErrorContains(t, s.Validate(), "SESSION_SECRET", dbType)
	}

	s := Load(map[string]string{"DB_TYPE": "sqlite"})
	assert.NoError(t, s.Validate())
}

type fakeParameters struct {
	value string
	err   error
	asked string
}

func (f *fakeParameters) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = aws.ToString(in.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveDatabasePassword(t *testing.T) {
	client := &fakeParameters{value: "s3cret"}
	db := DatabaseSettings{Password: "env", PasswordParameter: "/appstore/db/password"}

	require.NoError(t, ResolveDatabasePassword(context.Background(), client, &db))
	assert.Equal(t, "s3cret", db.Password)
	assert.Equal(t, "/appstore/db/password", client.asked)
}

func TestResolveDatabasePasswordWithoutParameter(t *testing.T) {
	client := &fakeParameters{err: errors.New("should not be called")}
	db := DatabaseSettings{Password: "env"}

	require.NoError(t, ResolveDatabasePassword(context.Background(), client, &db))
	assert.Equal(t, "env", db.Password)
	assert.Empty(t, client.asked)
}

func TestResolveDatabasePasswordError(t *testing.T) {
	client := &fakeParameters{err: errors.New("access denied")}
	db := DatabaseSettings{Password: "env", PasswordParameter: "/p"}

	err := ResolveDatabasePassword(context.Background(), client, &db)
	assert.ErrorContains(t, err, "access denied")
	assert.Equal(t, "env", db.Password)
}

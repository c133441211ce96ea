package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
}

func TestValidateRejectsBadPort(t *testing.T) {
	c := Default()
	c.Port = 70000
	assert.Error(t, c.Validate())
}

func TestValidateRejectsMaxConOverCap(t *testing.T) {
	c := Default()
	c.MaxCon = DefaultMaxCon + 1
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	c := Default()
	c.Mode = "staging"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBGSaveEnabledWithoutInterval(t *testing.T) {
	c := Default()
	c.BGSave = BGSaveConfig{Enabled: true}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsSnapshotWithoutAtMost(t *testing.T) {
	c := Default()
	c.Snapshot = SnapshotConfig{Every: 30 * time.Second}
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsSnapshotConfig(t *testing.T) {
	c := Default()
	c.Snapshot = SnapshotConfig{Every: 30 * time.Second, AtMost: 5}
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsIncompleteTLS(t *testing.T) {
	c := Default()
	c.TLS = &TLSConfig{Key: "key.pem", Port: DefaultSecurePort}
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsCompleteTLS(t *testing.T) {
	c := Default()
	c.TLS = &TLSConfig{Key: "key.pem", Chain: "chain.pem", Port: DefaultSecurePort}
	assert.NoError(t, c.Validate())
}

func TestValidateOriginKeyLength(t *testing.T) {
	c := Default()
	c.Auth.OriginKey = "tooshort"
	assert.Error(t, c.Validate())
}

func TestValidateOriginKeyCharset(t *testing.T) {
	c := Default()
	c.Auth.OriginKey = "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"
	assert.Len(t, c.Auth.OriginKey, 40)
	assert.Error(t, c.Validate())
}

func TestValidateAccepts40CharOriginKey(t *testing.T) {
	c := Default()
	c.Auth.OriginKey = "abcdefghij0123456789ABCDEFGHIJ0123456789"[:40]
	require.Len(t, c.Auth.OriginKey, 40)
	assert.NoError(t, c.Validate())
}

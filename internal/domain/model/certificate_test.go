package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialSecretAlwaysRedacts(t *testing.T) {
	secret := NewCredentialSecret("dns-credential", []byte("token-abc"))

	assert.Equal(t, "credential:dns-credential:[redacted]", secret.String())
	assert.NotContains(t, fmt.Sprintf("%v", secret), "token-abc")
	assert.NotContains(t, fmt.Sprintf("%s", secret), "token-abc")
}

func TestCredentialSecretWipe(t *testing.T) {
	raw := []byte("token-abc")
	secret := NewCredentialSecret("dns-credential", raw)

	secret.Wipe()
	assert.True(t, secret.Empty())
	for _, b := range raw {
		assert.Zero(t, b, "backing buffer must be zeroed")
	}

	// Wiping nil or twice is safe.
	secret.Wipe()
	var nilSecret *CredentialSecret
	nilSecret.Wipe()
	assert.True(t, nilSecret.Empty())
	assert.Nil(t, nilSecret.Value())
}

func TestCertificateMaterialComplete(t *testing.T) {
	material := &CertificateMaterial{
		Certificate: []byte("leaf"),
		PrivateKey:  []byte("key"),
		Chain:       []byte("chain"),
	}
	assert.True(t, material.Complete())

	material.Chain = nil
	assert.False(t, material.Complete())

	var nilMaterial *CertificateMaterial
	assert.False(t, nilMaterial.Complete())
}

func TestCertificateMaterialWipe(t *testing.T) {
	leaf := []byte("leaf")
	material := &CertificateMaterial{
		Certificate: leaf,
		PrivateKey:  []byte("key"),
		Chain:       []byte("chain"),
	}

	material.Wipe()
	assert.Nil(t, material.Certificate)
	assert.Nil(t, material.PrivateKey)
	assert.Nil(t, material.Chain)
	for _, b := range leaf {
		assert.Zero(t, b)
	}

	var nilMaterial *CertificateMaterial
	nilMaterial.Wipe()
}

func TestRenewalJobHostnames(t *testing.T) {
	job := &RenewalJob{Domain: "example.com", WildcardDomain: "*.example.com"}
	assert.Equal(t, []string{"example.com", "*.example.com"}, job.Hostnames())

	job.WildcardDomain = ""
	assert.Equal(t, []string{"example.com"}, job.Hostnames())
}

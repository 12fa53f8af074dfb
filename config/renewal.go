package config

import "time"

// RenewalConfig contains the certificate renewal workflow configuration.
type RenewalConfig struct {
	// Domain is the apex domain to renew, e.g. "example.com".
	Domain string `env:"RENEWAL_DOMAIN"`

	// WildcardEnabled requests "*.<domain>" as an additional SAN.
	WildcardEnabled bool `env:"RENEWAL_WILDCARD_ENABLED" envDefault:"true"`

	// ACMCertificateARN is the stable certificate identity in ACM. Every
	// renewal re-imports against this ARN so downstream consumers never need
	// reconfiguration.
	ACMCertificateARN string `env:"RENEWAL_ACM_CERTIFICATE_ARN"`

	// SecretName is the Secrets Manager key holding the Route53 credential
	// used for the DNS-01 challenge.
	SecretName string `env:"RENEWAL_SECRET_NAME"`

	// ACMEDirectoryURL selects the CA. Defaults to Let's Encrypt production;
	// point it at the staging directory for test runs.
	ACMEDirectoryURL string `env:"RENEWAL_ACME_DIRECTORY_URL" envDefault:"https://acme-v02.api.letsencrypt.org/directory"`

	// ACMEEmail is the ACME account contact.
	ACMEEmail string `env:"RENEWAL_ACME_EMAIL"`

	// HostedZoneID is the Route53 zone the challenge TXT records go into.
	HostedZoneID string `env:"RENEWAL_HOSTED_ZONE_ID"`

	// InstanceID is the EC2 instance that hosts the renewal job.
	InstanceID string `env:"RENEWAL_INSTANCE_ID"`

	// LockTTL bounds how long the renewal lock blocks duplicate triggers.
	LockTTL time.Duration `env:"RENEWAL_LOCK_TTL" envDefault:"1h"`

	// StageTimeout bounds each renewal stage individually.
	StageTimeout time.Duration `env:"RENEWAL_STAGE_TIMEOUT" envDefault:"15m"`

	// TotalTimeout bounds the whole renewal invocation.
	TotalTimeout time.Duration `env:"RENEWAL_TOTAL_TIMEOUT" envDefault:"45m"`
}

// Sanitize applies guardrails to renewal configuration values.
func (r *RenewalConfig) Sanitize() {
	if r.LockTTL <= 0 {
		r.LockTTL = time.Hour
	}
	if r.StageTimeout <= 0 {
		r.StageTimeout = 15 * time.Minute
	}
	if r.TotalTimeout < r.StageTimeout {
		r.TotalTimeout = 3 * r.StageTimeout
	}
}

// WildcardDomain returns the wildcard SAN, or empty when disabled.
func (r *RenewalConfig) WildcardDomain() string {
	if !r.WildcardEnabled || r.Domain == "" {
		return ""
	}
	return "*." + r.Domain
}

package model

// CredentialSecret is a DNS-provider API credential fetched from the secret
// store. It lives only in memory for the duration of one renewal job and is
// wiped at terminate time. It must never reach durable storage or logs.
type CredentialSecret struct {
	Name  string
	value []byte
}

// NewCredentialSecret wraps a raw secret value.
func NewCredentialSecret(name string, value []byte) *CredentialSecret {
	return &CredentialSecret{Name: name, value: value}
}

// Value returns the raw secret bytes.
func (s *CredentialSecret) Value() []byte {
	if s == nil {
		return nil
	}
	return s.value
}

// Empty reports whether the secret has no usable value.
func (s *CredentialSecret) Empty() bool {
	return s == nil || len(s.value) == 0
}

// Wipe zeroes the secret value in place.
func (s *CredentialSecret) Wipe() {
	if s == nil {
		return
	}
	for i := range s.value {
		s.value[i] = 0
	}
	s.value = nil
}

// String implements fmt.Stringer and always redacts. A CredentialSecret that
// ends up in a log line must not leak its value.
func (s *CredentialSecret) String() string {
	return "credential:" + s.Name + ":[redacted]"
}

// CertificateMaterial is the PEM output of one issuance: leaf certificate,
// private key, and the intermediate chain. Produced once per job, consumed
// exactly once by the reconciler, and wiped on both success and failure paths.
type CertificateMaterial struct {
	// Certificate is the PEM-encoded leaf certificate.
	Certificate []byte
	// PrivateKey is the PEM-encoded private key.
	PrivateKey []byte
	// Chain is the PEM-encoded intermediate chain, leaf excluded. The
	// certificate store wants leaf and intermediates separated; passing a
	// fullchain bundle as the chain is rejected as malformed.
	Chain []byte
}

// Complete reports whether all three artifacts are present.
func (m *CertificateMaterial) Complete() bool {
	return m != nil && len(m.Certificate) > 0 && len(m.PrivateKey) > 0 && len(m.Chain) > 0
}

// Wipe zeroes all PEM buffers in place.
func (m *CertificateMaterial) Wipe() {
	if m == nil {
		return
	}
	for _, b := range [][]byte{m.Certificate, m.PrivateKey, m.Chain} {
		for i := range b {
			b[i] = 0
		}
	}
	m.Certificate = nil
	m.PrivateKey = nil
	m.Chain = nil
}

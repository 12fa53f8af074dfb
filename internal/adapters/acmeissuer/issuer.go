// Package acmeissuer obtains certificates from an ACME CA using the DNS-01
// challenge.
package acmeissuer

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	stderrors "errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/acme"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
)

// LetsEncryptURL is the production ACME directory.
const LetsEncryptURL = "https://acme-v02.api.letsencrypt.org/directory"

// DNSSolver places and removes the TXT records that prove domain ownership.
type DNSSolver interface {
	// Present upserts a TXT record at fqdn with the given value and blocks
	// until the change has propagated far enough for the CA to see it.
	Present(ctx context.Context, fqdn, value string) error
	// CleanUp removes the TXT record. Best effort; a leftover challenge
	// record is harmless.
	CleanUp(ctx context.Context, fqdn string) error
}

// SolverFactory builds a DNS solver authenticated with the credential fetched
// for this renewal job.
type SolverFactory func(cred *model.CredentialSecret) (DNSSolver, error)

// Issuer drives the ACME order flow. Issuance is unconditional: every call
// requests a fresh certificate regardless of what is already deployed, which
// keeps the schedule trivial at the cost of extra CA requests.
type Issuer struct {
	client     *acme.Client
	solverFor  SolverFactory
	email      string
	logger     *slog.Logger
	registered bool
}

// Options configures the issuer.
type Options struct {
	// Client is the ACME client, carrying the account key and directory URL.
	Client *acme.Client
	// SolverFactory builds the per-job DNS solver.
	SolverFactory SolverFactory
	// Email is the ACME account contact.
	Email  string
	Logger *slog.Logger
}

// NewIssuer constructs an Issuer.
func NewIssuer(opts Options) (*Issuer, error) {
	if opts.Client == nil {
		return nil, stderrors.New("acme client is required")
	}
	if opts.SolverFactory == nil {
		return nil, stderrors.New("dns solver factory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "acme_issuer")
	}
	return &Issuer{
		client:    opts.Client,
		solverFor: opts.SolverFactory,
		email:     opts.Email,
		logger:    logger,
	}, nil
}

// Issue runs one DNS-01 order for the job's hostnames and returns the PEM
// material with leaf and intermediates separated. All failures map to
// issuance_failed carrying the underlying cause as the diagnostic.
func (i *Issuer) Issue(
	ctx context.Context,
	job *model.RenewalJob,
	cred *model.CredentialSecret,
) (*model.CertificateMaterial, error) {
	if cred.Empty() {
		return nil, errors.IssuanceFailed("dns credential is empty")
	}

	solver, err := i.solverFor(cred)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "build dns solver")
	}

	if err := i.ensureAccount(ctx); err != nil {
		return nil, err
	}

	hostnames := job.Hostnames()
	i.logger.InfoContext(ctx, "creating acme order", "run_id", job.RunID, "hostnames", hostnames)

	order, err := i.client.AuthorizeOrder(ctx, acme.DomainIDs(hostnames...))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "create order")
	}

	if order.Status != acme.StatusReady {
		if err := i.completeAuthorizations(ctx, order, solver); err != nil {
			return nil, err
		}
		if order, err = i.client.WaitOrder(ctx, order.URI); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "wait order")
		}
	}

	return i.finalize(ctx, order, hostnames)
}

// ensureAccount registers the account key with the CA. Registration of an
// existing key is expected and ignored.
func (i *Issuer) ensureAccount(ctx context.Context) error {
	if i.registered {
		return nil
	}
	_, err := i.client.Register(ctx, &acme.Account{
		Contact: []string{"mailto:" + i.email},
	}, acme.AcceptTOS)
	if err != nil && !stderrors.Is(err, acme.ErrAccountAlreadyExists) {
		return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "register acme account")
	}
	i.registered = true
	return nil
}

func (i *Issuer) completeAuthorizations(ctx context.Context, order *acme.Order, solver DNSSolver) error {
	for _, authzURL := range order.AuthzURLs {
		authz, err := i.client.GetAuthorization(ctx, authzURL)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "get authorization")
		}
		if authz.Status == acme.StatusValid {
			continue
		}
		if err := i.solveAuthorization(ctx, authz, solver); err != nil {
			return err
		}
	}
	return nil
}

func (i *Issuer) solveAuthorization(ctx context.Context, authz *acme.Authorization, solver DNSSolver) error {
	var chal *acme.Challenge
	for _, c := range authz.Challenges {
		if c.Type == "dns-01" {
			chal = c
			break
		}
	}
	if chal == nil {
		return errors.IssuanceFailed("no dns-01 challenge offered for " + authz.Identifier.Value)
	}

	record, err := i.client.DNS01ChallengeRecord(chal.Token)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "compute challenge record")
	}

	// The wildcard and apex identifiers share the same authorization name.
	fqdn := "_acme-challenge." + strings.TrimPrefix(authz.Identifier.Value, "*.") + "."
	i.logger.InfoContext(ctx, "presenting dns challenge", "fqdn", fqdn, "identifier", authz.Identifier.Value)

	if err := solver.Present(ctx, fqdn, record); err != nil {
		return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "present dns record")
	}
	defer func() {
		if cleanErr := solver.CleanUp(context.WithoutCancel(ctx), fqdn); cleanErr != nil {
			i.logger.WarnContext(ctx, "challenge record cleanup failed", "fqdn", fqdn, "error", cleanErr)
		}
	}()

	if _, err := i.client.Accept(ctx, chal); err != nil {
		return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "accept challenge")
	}
	if _, err := i.client.WaitAuthorization(ctx, authz.URI); err != nil {
		return errors.Wrap(err, errors.ErrCodeIssuanceFailed, "wait authorization")
	}
	return nil
}

// finalize generates the key pair, submits the CSR, and splits the returned
// bundle into leaf and intermediate chain.
func (i *Issuer) finalize(ctx context.Context, order *acme.Order, hostnames []string) (*model.CertificateMaterial, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "generate certificate key")
	}

	csr, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject:  pkix.Name{CommonName: hostnames[0]},
		DNSNames: hostnames,
	}, key)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "create csr")
	}

	ders, _, err := i.client.CreateOrderCert(ctx, order.FinalizeURL, csr, true)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIssuanceFailed, "finalize order")
	}
	if len(ders) == 0 {
		return nil, errors.IssuanceFailed("ca returned an empty certificate bundle")
	}

	return assembleMaterial(key, ders)
}

// assembleMaterial PEM-encodes the artifacts. The first DER in the bundle is
// the leaf; everything after it is the intermediate chain. The store wants
// them separated, so the fullchain bundle is never emitted as a single blob.
func assembleMaterial(key *rsa.PrivateKey, ders [][]byte) (*model.CertificateMaterial, error) {
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	leafPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ders[0]})

	var chain []byte
	for _, der := range ders[1:] {
		chain = append(chain, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)
	}
	if len(chain) == 0 {
		return nil, errors.IssuanceFailed("ca returned no intermediate chain")
	}

	return &model.CertificateMaterial{
		Certificate: leafPEM,
		PrivateKey:  keyPEM,
		Chain:       chain,
	}, nil
}

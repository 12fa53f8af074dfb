// Package awssecrets implements the secret provider on AWS Secrets Manager.
package awssecrets

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
)

// Provider fetches DNS-provider credentials from Secrets Manager. Values are
// decrypted in transit and held only in memory; nothing here logs or persists
// the secret.
type Provider struct {
	sm secretsmanageriface.SecretsManagerAPI
}

// NewProvider creates a Provider backed by the given Secrets Manager client.
func NewProvider(api secretsmanageriface.SecretsManagerAPI) *Provider {
	return &Provider{sm: api}
}

// Fetch returns the named secret. Any store failure, a missing secret, or an
// empty value maps to secret_unavailable: the renewal job must abort before
// issuance rather than present a bad credential to the DNS provider.
func (p *Provider) Fetch(ctx context.Context, name string) (*model.CredentialSecret, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.SecretUnavailable("secret name is empty")
	}

	out, err := p.sm.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var aerr awserr.Error
		if stderrors.As(err, &aerr) && aerr.Code() == secretsmanager.ErrCodeResourceNotFoundException {
			return nil, errors.Wrapf(err, errors.ErrCodeSecretUnavailable, "secret %s not found", name)
		}
		return nil, errors.Wrapf(err, errors.ErrCodeSecretUnavailable, "secret store unreachable for %s", name)
	}

	var value []byte
	switch {
	case out.SecretString != nil:
		value = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		value = out.SecretBinary
	}

	if len(value) == 0 {
		return nil, errors.SecretUnavailable("secret " + name + " has an empty value")
	}

	return model.NewCredentialSecret(name, value), nil
}

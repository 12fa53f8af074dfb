// Package acmstore implements the certificate store reconciler on AWS ACM.
package acmstore

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/acm"
	"github.com/aws/aws-sdk-go/service/acm/acmiface"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
)

// Reconciler imports issued certificate material into ACM against a fixed
// certificate ARN. Importing to an existing ARN replaces the material in
// place, so the identity that CloudFront and load balancers bind to survives
// every renewal unchanged. Re-importing identical material succeeds as a
// no-op replacement.
type Reconciler struct {
	acm acmiface.ACMAPI
}

// NewReconciler creates a Reconciler backed by the given ACM client.
func NewReconciler(api acmiface.ACMAPI) *Reconciler {
	return &Reconciler{acm: api}
}

// Reconcile imports the material against stableRef. The certificate chain
// holds intermediates only; ACM rejects a bundle whose first block repeats
// the leaf.
func (r *Reconciler) Reconcile(ctx context.Context, stableRef string, material *model.CertificateMaterial) error {
	if strings.TrimSpace(stableRef) == "" {
		return errors.ReconcileFailed("stable certificate reference is empty")
	}
	if !material.Complete() {
		return errors.ReconcileFailed("certificate material is incomplete")
	}

	_, err := r.acm.ImportCertificateWithContext(ctx, &acm.ImportCertificateInput{
		CertificateArn:   aws.String(stableRef),
		Certificate:      material.Certificate,
		PrivateKey:       material.PrivateKey,
		CertificateChain: material.Chain,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeReconcileFailed, "import certificate %s", stableRef)
	}
	return nil
}

package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/acm"
	"github.com/aws/aws-sdk-go/service/acm/acmiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"

	"github.com/cloudfolio/siteops/config"
)

// AWSClients groups the service clients sharing one session. Clients are
// exposed as their interface types so tests can substitute them.
type AWSClients struct {
	Secrets secretsmanageriface.SecretsManagerAPI
	ACM     acmiface.ACMAPI
	EC2     ec2iface.EC2API
	SNS     snsiface.SNSAPI
}

// NewAWSClients creates the shared session and service clients. Credentials
// come from the default chain (instance profile, env, shared config); only
// the Route53 challenge client uses explicit keys, and those are built per
// renewal from the fetched secret.
func NewAWSClients(cfg config.AWSConfig, logger *slog.Logger) (*AWSClients, error) {
	sess, err := session.NewSession(aws.NewConfig().WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	if logger != nil {
		logger.Info("aws session created", "region", cfg.Region)
	}

	return &AWSClients{
		Secrets: secretsmanager.New(sess),
		ACM:     acm.New(sess),
		EC2:     ec2.New(sess),
		SNS:     sns.New(sess),
	}, nil
}

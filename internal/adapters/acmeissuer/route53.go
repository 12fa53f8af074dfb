package acmeissuer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"

	"github.com/cloudfolio/siteops/internal/domain/model"
)

const challengeRecordTTL = 15

// route53Credential is the JSON shape of the DNS credential stored in the
// secret store.
type route53Credential struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Route53Solver places ACME challenge TXT records in a Route53 hosted zone.
type Route53Solver struct {
	dns    route53iface.Route53API
	zoneID string

	mu        sync.Mutex
	presented map[string]string
}

// NewRoute53Solver creates a solver over an existing Route53 client.
func NewRoute53Solver(api route53iface.Route53API, zoneID string) *Route53Solver {
	return &Route53Solver{
		dns:       api,
		zoneID:    zoneID,
		presented: make(map[string]string),
	}
}

// NewRoute53SolverFactory returns a SolverFactory that authenticates to
// Route53 with the static key pair carried in the fetched credential. The
// credential is decoded per job and never cached.
func NewRoute53SolverFactory(region, zoneID string) SolverFactory {
	return func(cred *model.CredentialSecret) (DNSSolver, error) {
		var kc route53Credential
		if err := json.Unmarshal(cred.Value(), &kc); err != nil {
			return nil, fmt.Errorf("decode dns credential: %w", err)
		}
		if kc.AccessKeyID == "" || kc.SecretAccessKey == "" {
			return nil, fmt.Errorf("dns credential is missing key material")
		}

		sess, err := session.NewSession(aws.NewConfig().
			WithRegion(region).
			WithCredentials(credentials.NewStaticCredentials(kc.AccessKeyID, kc.SecretAccessKey, "")))
		if err != nil {
			return nil, fmt.Errorf("create dns session: %w", err)
		}
		return NewRoute53Solver(route53.New(sess), zoneID), nil
	}
}

// Present upserts the TXT record and waits for the zone change to reach
// INSYNC so the CA's resolvers see it.
func (s *Route53Solver) Present(ctx context.Context, fqdn, value string) error {
	out, err := s.dns.ChangeResourceRecordSetsWithContext(ctx, s.changeInput("UPSERT", fqdn, value))
	if err != nil {
		return fmt.Errorf("upsert txt record %s: %w", fqdn, err)
	}

	if err := s.dns.WaitUntilResourceRecordSetsChangedWithContext(ctx, &route53.GetChangeInput{
		Id: out.ChangeInfo.Id,
	}); err != nil {
		return fmt.Errorf("wait for record change %s: %w", fqdn, err)
	}

	s.mu.Lock()
	s.presented[fqdn] = value
	s.mu.Unlock()
	return nil
}

// CleanUp deletes the record presented earlier. Unknown records are ignored.
func (s *Route53Solver) CleanUp(ctx context.Context, fqdn string) error {
	s.mu.Lock()
	value, ok := s.presented[fqdn]
	delete(s.presented, fqdn)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	if _, err := s.dns.ChangeResourceRecordSetsWithContext(ctx, s.changeInput("DELETE", fqdn, value)); err != nil {
		return fmt.Errorf("delete txt record %s: %w", fqdn, err)
	}
	return nil
}

func (s *Route53Solver) changeInput(action, fqdn, value string) *route53.ChangeResourceRecordSetsInput {
	return &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(s.zoneID),
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{{
				Action: aws.String(action),
				ResourceRecordSet: &route53.ResourceRecordSet{
					Name: aws.String(fqdn),
					Type: aws.String("TXT"),
					TTL:  aws.Int64(challengeRecordTTL),
					ResourceRecords: []*route53.ResourceRecord{{
						Value: aws.String(fmt.Sprintf("%q", value)),
					}},
				},
			}},
		},
	}
}

package acmeissuer

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudfolio/siteops/internal/domain/model"
)

type fakeRoute53 struct {
	route53iface.Route53API
	changes []*route53.ChangeResourceRecordSetsInput
	err     error
}

func (f *fakeRoute53) ChangeResourceRecordSetsWithContext(
	_ aws.Context,
	input *route53.ChangeResourceRecordSetsInput,
	_ ...request.Option,
) (*route53.ChangeResourceRecordSetsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.changes = append(f.changes, input)
	return &route53.ChangeResourceRecordSetsOutput{
		ChangeInfo: &route53.ChangeInfo{Id: aws.String("change-1")},
	}, nil
}

func (f *fakeRoute53) WaitUntilResourceRecordSetsChangedWithContext(
	_ aws.Context,
	_ *route53.GetChangeInput,
	_ ...request.WaiterOption,
) error {
	return nil
}

func TestPresentUpsertsQuotedTXTRecord(t *testing.T) {
	api := &fakeRoute53{}
	solver := NewRoute53Solver(api, "Z123")

	err := solver.Present(context.Background(), "_acme-challenge.example.com.", "token-value")
	require.NoError(t, err)
	require.Len(t, api.changes, 1)

	change := api.changes[0].ChangeBatch.Changes[0]
	assert.Equal(t, "UPSERT", aws.StringValue(change.Action))
	assert.Equal(t, "Z123", aws.StringValue(api.changes[0].HostedZoneId))

	rrs := change.ResourceRecordSet
	assert.Equal(t, "_acme-challenge.example.com.", aws.StringValue(rrs.Name))
	assert.Equal(t, "TXT", aws.StringValue(rrs.Type))
	assert.Equal(t, `"token-value"`, aws.StringValue(rrs.ResourceRecords[0].Value))
}

func TestCleanUpDeletesPresentedRecord(t *testing.T) {
	api := &fakeRoute53{}
	solver := NewRoute53Solver(api, "Z123")
	ctx := context.Background()

	require.NoError(t, solver.Present(ctx, "_acme-challenge.example.com.", "token-value"))
	require.NoError(t, solver.CleanUp(ctx, "_acme-challenge.example.com."))
	require.Len(t, api.changes, 2)
	assert.Equal(t, "DELETE", aws.StringValue(api.changes[1].ChangeBatch.Changes[0].Action))
}

func TestCleanUpUnknownRecordIsNoop(t *testing.T) {
	api := &fakeRoute53{}
	solver := NewRoute53Solver(api, "Z123")

	require.NoError(t, solver.CleanUp(context.Background(), "_acme-challenge.unknown.com."))
	assert.Empty(t, api.changes)
}

func TestSolverFactoryDecodesCredential(t *testing.T) {
	factory := NewRoute53SolverFactory("us-east-1", "Z123")

	cred := model.NewCredentialSecret("dns-credential",
		[]byte(`{"access_key_id":"AKIA123","secret_access_key":"shhh"}`))
	solver, err := factory(cred)
	require.NoError(t, err)
	assert.NotNil(t, solver)
}

func TestSolverFactoryRejectsBadCredential(t *testing.T) {
	factory := NewRoute53SolverFactory("us-east-1", "Z123")

	_, err := factory(model.NewCredentialSecret("dns-credential", []byte("not json")))
	assert.Error(t, err)

	_, err = factory(model.NewCredentialSecret("dns-credential", []byte(`{"access_key_id":"AKIA123"}`)))
	assert.ErrorContains(t, err, "missing key material")
}

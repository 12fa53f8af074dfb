package sns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	awssns "github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/observability/notify"
)

type fakeSNS struct {
	snsiface.SNSAPI
	published []*awssns.PublishInput
	err       error
}

func (f *fakeSNS) PublishWithContext(_ aws.Context, input *awssns.PublishInput, _ ...request.Option) (*awssns.PublishOutput, error) {
	f.published = append(f.published, input)
	if f.err != nil {
		return nil, f.err
	}
	return &awssns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func successPayload() notify.RenewalOutcomePayload {
	return notify.RenewalOutcomePayload{
		RunID:           "run-1",
		Domain:          "example.com",
		StableReference: "cert-123",
		Outcome:         model.RenewalOutcomeSuccess,
		Elapsed:         3*time.Minute + 12*time.Second,
		OccurredAt:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewClientRequiresTopic(t *testing.T) {
	_, err := NewClient(&fakeSNS{}, Config{})
	assert.Error(t, err)
}

func TestSendRenewalOutcomeSuccessSubject(t *testing.T) {
	api := &fakeSNS{}
	client, err := NewClient(api, Config{TopicARN: "arn:aws:sns:us-east-1:123:renewals"})
	require.NoError(t, err)

	require.NoError(t, client.SendRenewalOutcome(context.Background(), successPayload()))
	require.Len(t, api.published, 1)

	msg := api.published[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123:renewals", aws.StringValue(msg.TopicArn))
	assert.Equal(t, "siteops: TLS renewal succeeded for example.com", aws.StringValue(msg.Subject))
	assert.Contains(t, aws.StringValue(msg.Message), "Renewal run run-1 for example.com")
	assert.Contains(t, aws.StringValue(msg.Message), "Certificate: cert-123")
	assert.Contains(t, aws.StringValue(msg.Message), "Elapsed: 3m12s")
}

func TestSendRenewalOutcomeFailureNamesStage(t *testing.T) {
	api := &fakeSNS{}
	client, err := NewClient(api, Config{TopicARN: "arn:topic", SubjectPrefix: "mysite"})
	require.NoError(t, err)

	payload := successPayload()
	payload.Outcome = model.RenewalOutcomeFailure
	payload.Stage = model.StageIssue
	payload.Detail = "issuance process exited with code 1"

	require.NoError(t, client.SendRenewalOutcome(context.Background(), payload))
	require.Len(t, api.published, 1)

	msg := api.published[0]
	assert.Equal(t, "mysite: TLS renewal FAILED (issue) for example.com", aws.StringValue(msg.Subject))
	assert.Contains(t, aws.StringValue(msg.Message), "Failed stage: issue")
	assert.Contains(t, aws.StringValue(msg.Message), "Detail: issuance process exited with code 1")
}

func TestSendRenewalOutcomePublishError(t *testing.T) {
	api := &fakeSNS{err: errors.New("throttled")}
	client, err := NewClient(api, Config{TopicARN: "arn:topic"})
	require.NoError(t, err)

	err = client.SendRenewalOutcome(context.Background(), successPayload())
	assert.ErrorContains(t, err, "sns publish")
}

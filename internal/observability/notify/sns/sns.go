// Package sns delivers renewal outcome notifications to an SNS topic.
package sns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	awssns "github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/observability/notify"
	"github.com/cloudfolio/siteops/internal/util"
)

// Config captures the subset of SNS behaviour we need.
type Config struct {
	TopicARN string
	// Subject prefix for every notification, e.g. "siteops".
	SubjectPrefix string
}

// Client publishes renewal outcomes to an SNS topic. Free-text subject and
// body only; no structured schema beyond that.
type Client struct {
	sns           snsiface.SNSAPI
	topicARN      string
	subjectPrefix string
}

// NewClient builds an SNS notification client.
func NewClient(api snsiface.SNSAPI, cfg Config) (*Client, error) {
	topic := strings.TrimSpace(cfg.TopicARN)
	if topic == "" {
		return nil, errors.New("sns topic arn is required")
	}
	prefix := strings.TrimSpace(cfg.SubjectPrefix)
	if prefix == "" {
		prefix = "siteops"
	}
	return &Client{sns: api, topicARN: topic, subjectPrefix: prefix}, nil
}

// SendRenewalOutcome publishes a single notification. One attempt, no retry:
// the renewal job is already terminating and escalation has no further
// audience.
func (c *Client) SendRenewalOutcome(ctx context.Context, payload notify.RenewalOutcomePayload) error {
	subject := c.formatSubject(payload)
	body := formatBody(payload)

	_, err := c.sns.PublishWithContext(ctx, &awssns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// formatSubject gives each failure stage its own subject line so operators
// can distinguish "got a cert but couldn't store it" from "never got a cert"
// without opening the body.
func (c *Client) formatSubject(payload notify.RenewalOutcomePayload) string {
	if payload.Outcome == model.RenewalOutcomeSuccess {
		return fmt.Sprintf("%s: TLS renewal succeeded for %s", c.subjectPrefix, payload.Domain)
	}
	stage := string(payload.Stage)
	if stage == "" {
		stage = "unknown stage"
	}
	return fmt.Sprintf("%s: TLS renewal FAILED (%s) for %s", c.subjectPrefix, stage, payload.Domain)
}

func formatBody(payload notify.RenewalOutcomePayload) string {
	ts := payload.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "Renewal run %s for %s\n", payload.RunID, payload.Domain)
	fmt.Fprintf(&b, "Outcome: %s\n", payload.Outcome)
	if payload.StableReference != "" {
		fmt.Fprintf(&b, "Certificate: %s\n", payload.StableReference)
	}
	if payload.Stage != "" {
		fmt.Fprintf(&b, "Failed stage: %s\n", payload.Stage)
	}
	if payload.Detail != "" {
		fmt.Fprintf(&b, "Detail: %s\n", payload.Detail)
	}
	fmt.Fprintf(&b, "Elapsed: %s\n", util.FormatElapsed(payload.Elapsed))
	fmt.Fprintf(&b, "Timestamp: %s\n", ts.UTC().Format(time.RFC3339))
	return b.String()
}
